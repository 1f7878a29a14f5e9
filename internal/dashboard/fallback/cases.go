package fallback

import (
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

// Cases returns the five illustrative investigation cases. Callers own the slice.
func (g *Generator) Cases() []entity.Case {
	return []entity.Case{
		{
			ID:                   "TXN001",
			Amount:               850000,
			Type:                 entity.TxTypeTransfer,
			OriginAccount:        "ACC123456789",
			DestAccount:          "ACC987654321",
			Timestamp:            time.Date(2025, 9, 1, 14, 30, 25, 0, time.UTC),
			Location:             "Bhopal, MP",
			Coordinates:          entity.GeoPoint{Lat: 23.2599, Lng: 77.4126},
			RiskScore:            95,
			Status:               entity.CaseStatusFlagged,
			CustomerName:         "Rajesh Kumar",
			SuspiciousPattern:    "Large amount, unusual time",
			IPAddress:            "192.168.1.45",
			DeviceFingerprint:    "MOB_ANDROID_SM-G973",
			MerchantCategory:     "Financial Services",
			CustomerRiskProfile:  "Medium",
			TransactionChannel:   "Mobile App",
			AuthenticationMethod: "PIN + Biometric",
			GeoLocation:          "Bhopal Central, MP",
		},
		{
			ID:                   "TXN002",
			Amount:               1250000,
			Type:                 entity.TxTypeCashOut,
			OriginAccount:        "ACC456789123",
			DestAccount:          "ATM_MP_001",
			Timestamp:            time.Date(2025, 9, 1, 2, 15, 45, 0, time.UTC),
			Location:             "Indore, MP",
			Coordinates:          entity.GeoPoint{Lat: 22.7196, Lng: 75.8577},
			RiskScore:            88,
			Status:               entity.CaseStatusUnderReview,
			CustomerName:         "Priya Sharma",
			SuspiciousPattern:    "Night transaction, high amount",
			IPAddress:            "10.0.0.123",
			DeviceFingerprint:    "ATM_TERMINAL_4521",
			MerchantCategory:     "ATM Withdrawal",
			CustomerRiskProfile:  "High",
			TransactionChannel:   "ATM",
			AuthenticationMethod: "PIN Only",
			GeoLocation:          "Indore IT Park, MP",
			RecurringPattern:     true,
		},
		{
			ID:                   "TXN003",
			Amount:               675000,
			Type:                 entity.TxTypePayment,
			OriginAccount:        "ACC789123456",
			DestAccount:          "MERCH_E_COMM_789",
			Timestamp:            time.Date(2025, 8, 31, 23, 45, 12, 0, time.UTC),
			Location:             "Gwalior, MP",
			Coordinates:          entity.GeoPoint{Lat: 26.2183, Lng: 78.1828},
			RiskScore:            82,
			Status:               entity.CaseStatusFlagged,
			CustomerName:         "Amit Verma",
			SuspiciousPattern:    "Multiple rapid transactions",
			IPAddress:            "203.45.67.89",
			DeviceFingerprint:    "WEB_CHROME_WINDOWS",
			MerchantCategory:     "E-commerce",
			CustomerRiskProfile:  "Low",
			TransactionChannel:   "Web Browser",
			AuthenticationMethod: "OTP + Password",
			GeoLocation:          "Gwalior Mall, MP",
			RecurringPattern:     true,
		},
		{
			ID:                   "TXN004",
			Amount:               2100000,
			Type:                 entity.TxTypeTransfer,
			OriginAccount:        "ACC321654987",
			DestAccount:          "ACC147258369",
			Timestamp:            time.Date(2025, 8, 31, 16, 20, 33, 0, time.UTC),
			Location:             "Jabalpur, MP",
			Coordinates:          entity.GeoPoint{Lat: 23.1815, Lng: 79.9864},
			RiskScore:            98,
			Status:               entity.CaseStatusBlocked,
			CustomerName:         "Sunita Patel",
			SuspiciousPattern:    "Unusual beneficiary, large amount",
			IPAddress:            "172.16.0.98",
			DeviceFingerprint:    "MOB_IOS_IPHONE12",
			MerchantCategory:     "Person to Person",
			CustomerRiskProfile:  "Low",
			TransactionChannel:   "Mobile App",
			AuthenticationMethod: "Face ID + PIN",
			GeoLocation:          "Jabalpur Railway Station, MP",
		},
		{
			ID:                   "TXN005",
			Amount:               450000,
			Type:                 entity.TxTypeCashOut,
			OriginAccount:        "ACC654987321",
			DestAccount:          "ATM_MP_089",
			Timestamp:            time.Date(2025, 8, 30, 11, 55, 20, 0, time.UTC),
			Location:             "Ujjain, MP",
			Coordinates:          entity.GeoPoint{Lat: 23.1765, Lng: 75.7849},
			RiskScore:            76,
			Status:               entity.CaseStatusInvestigating,
			CustomerName:         "Vikram Singh",
			SuspiciousPattern:    "Cross-border pattern detected",
			IPAddress:            "192.168.5.201",
			DeviceFingerprint:    "ATM_TERMINAL_8901",
			MerchantCategory:     "ATM Withdrawal",
			CustomerRiskProfile:  "Medium",
			TransactionChannel:   "ATM",
			AuthenticationMethod: "PIN Only",
			GeoLocation:          "Ujjain Temple Area, MP",
		},
	}
}
