package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

const (
	highValueAmount      = 500000
	highValueSavingsRate = 0.8
	velocityTransfers    = 15
	savingsPerTransfer   = 25000

	preventedPerRecommendation = 45
	riskReductionPercent       = 35
	implementationScore        = 78
)

// baseRecommendations apply regardless of the current fraud batch.
func baseRecommendations() []entity.Recommendation {
	return []entity.Recommendation{
		{
			ID:          "geo-fencing",
			Title:       "Geographic Risk Scoring",
			Category:    "Location Intelligence",
			Priority:    entity.PriorityMedium,
			Impact:      "Medium",
			Effort:      "Medium",
			Description: "Implement location-based risk assessment for transactions",
			Details: []string{
				"IP geolocation verification",
				"Known high-risk location blocking",
				"Travel pattern analysis",
				"Device location consistency checks",
			},
			EstimatedSavings: 1500000,
			Implementation:   entity.Implementation{Timeframe: "2-4 weeks", Resources: "Development + Data Science team", Cost: "₹1-2L"},
		},
		{
			ID:          "ml-enhancement",
			Title:       "Advanced ML Model Deployment",
			Category:    "AI/ML Enhancement",
			Priority:    entity.PriorityHigh,
			Impact:      "Very High",
			Effort:      "High",
			Description: "Deploy ensemble models with deep learning for better fraud detection",
			Details: []string{
				"Gradient boosting ensemble models",
				"Real-time feature engineering",
				"Anomaly detection using autoencoders",
				"Continuous model retraining pipeline",
			},
			EstimatedSavings: 5000000,
			Implementation:   entity.Implementation{Timeframe: "4-8 weeks", Resources: "Data Science + MLOps team", Cost: "₹5-8L"},
		},
		{
			ID:          "customer-education",
			Title:       "Customer Fraud Awareness Program",
			Category:    "User Education",
			Priority:    entity.PriorityLow,
			Impact:      "Medium",
			Effort:      "Low",
			Description: "Educate customers about fraud prevention best practices",
			Details: []string{
				"In-app security tips and notifications",
				"Phishing awareness campaigns",
				"Secure transaction guidelines",
				"Regular security updates and alerts",
			},
			EstimatedSavings: 800000,
			Implementation:   entity.Implementation{Timeframe: "1-2 weeks", Resources: "Marketing + UX team", Cost: "₹25-50K"},
		},
		{
			ID:          "realtime-alerts",
			Title:       "Real-time Fraud Alert System",
			Category:    "Monitoring & Alerts",
			Priority:    entity.PriorityHigh,
			Impact:      "High",
			Effort:      "Medium",
			Description: "Implement instant notifications for suspicious activities",
			Details: []string{
				"SMS/Email alerts for high-risk transactions",
				"Push notifications for mobile app",
				"Dashboard real-time monitoring",
				"Integration with security team workflows",
			},
			EstimatedSavings: 2000000,
			Implementation:   entity.Implementation{Timeframe: "2-3 weeks", Resources: "Development + DevOps team", Cost: "₹1-1.5L"},
		},
	}
}

// recommend builds the recommendations for a fraud batch: the batch-driven
// controls first, then the base set.
func recommend(txs []entity.Transaction) entity.Prevention {
	var recs []entity.Recommendation

	highValue := decimal.Zero
	highValueCount := 0
	transfers := 0
	for _, tx := range txs {
		if tx.Amount > highValueAmount {
			highValue = highValue.Add(decimal.NewFromFloat(tx.Amount))
			highValueCount++
		}
		if tx.Type == entity.TxTypeTransfer {
			transfers++
		}
	}

	if highValueCount > 0 {
		recs = append(recs, entity.Recommendation{
			ID:          "high-value-controls",
			Title:       "Enhanced High-Value Transaction Monitoring",
			Category:    "Transaction Controls",
			Priority:    entity.PriorityHigh,
			Impact:      "High",
			Effort:      "Medium",
			Description: "Implement additional verification steps for transactions above ₹5L",
			Details: []string{
				"Multi-factor authentication for high-value transfers",
				"Manager approval workflow for amounts > ₹5L",
				"Real-time identity verification",
				"Enhanced device fingerprinting",
			},
			EstimatedSavings: highValue.Mul(decimal.NewFromFloat(highValueSavingsRate)).Round(2).InexactFloat64(),
			Implementation:   entity.Implementation{Timeframe: "2-3 weeks", Resources: "Development team + Security team", Cost: "₹2-3L"},
		})
	}

	if transfers > velocityTransfers {
		recs = append(recs, entity.Recommendation{
			ID:          "velocity-controls",
			Title:       "Transaction Velocity Monitoring",
			Category:    "Behavioral Analytics",
			Priority:    entity.PriorityMedium,
			Impact:      "Medium",
			Effort:      "Low",
			Description: "Implement velocity checking to detect rapid successive transactions",
			Details: []string{
				"Set daily transaction limits per account",
				"Monitor transaction frequency patterns",
				"Flag accounts with unusual velocity spikes",
				"Implement cooling-off periods",
			},
			EstimatedSavings: float64(transfers * savingsPerTransfer),
			Implementation:   entity.Implementation{Timeframe: "1-2 weeks", Resources: "Development team", Cost: "₹50K-1L"},
		})
	}

	return withMetrics(append(recs, baseRecommendations()...))
}

func staticPrevention() entity.Prevention {
	return withMetrics(baseRecommendations())
}

func withMetrics(recs []entity.Recommendation) entity.Prevention {
	saved := decimal.Zero
	for _, r := range recs {
		saved = saved.Add(decimal.NewFromFloat(r.EstimatedSavings))
	}

	return entity.Prevention{
		Recommendations: recs,
		Metrics: entity.PreventionMetrics{
			TotalPrevented:      len(recs) * preventedPerRecommendation,
			AmountSaved:         saved.Round(2).InexactFloat64(),
			RiskReduction:       riskReductionPercent,
			ImplementationScore: implementationScore,
		},
	}
}
