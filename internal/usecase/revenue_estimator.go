package usecase

import "github.com/platepulse/backend/internal/domain"

// Rank bucket capture factors: the share of ideal search-driven customers
// a business at that position actually captures. One fixed snapshot.
const (
	captureTop3 = 1.0
	captureMid  = 0.4
	captureNone = 0.1
)

// Default model assumptions, overridable per request and via config
const (
	DefaultMonthlySearchVolume = 1000
	DefaultCTR                 = 0.33
	DefaultConversionRate      = 0.10
	DefaultAOV                 = 40.0
)

// ClassifyRank maps a local-search position to its coarse bucket.
// Position 0 means the business was absent from the results.
func ClassifyRank(position int) domain.RankBucket {
	switch {
	case position >= 1 && position <= 3:
		return domain.RankTop3
	case position >= 4 && position <= 10:
		return domain.RankMid
	default:
		return domain.RankNone
	}
}

// captureFactor returns the fraction of ideal customers captured per bucket
func captureFactor(bucket domain.RankBucket) float64 {
	switch bucket {
	case domain.RankTop3:
		return captureTop3
	case domain.RankMid:
		return captureMid
	default:
		return captureNone
	}
}

// EstimateRevenueLoss computes the hypothetical monthly revenue left on the
// table by ranking below the top 3:
//
//	ideal   = volume * ctr * conv
//	current = ideal * factor(bucket)
//	loss    = (ideal - current) * aov
//
// Zero or negative inputs fall back to the default assumptions.
func EstimateRevenueLoss(volume int, ctr, conv, aov float64, bucket domain.RankBucket) domain.RevenueLossEstimate {
	if volume <= 0 {
		volume = DefaultMonthlySearchVolume
	}
	if ctr <= 0 {
		ctr = DefaultCTR
	}
	if conv <= 0 {
		conv = DefaultConversionRate
	}
	if aov <= 0 {
		aov = DefaultAOV
	}

	ideal := float64(volume) * ctr * conv
	current := ideal * captureFactor(bucket)

	return domain.RevenueLossEstimate{
		MonthlySearchVolume: volume,
		CTR:                 ctr,
		ConversionRate:      conv,
		AOV:                 aov,
		RankBucket:          bucket,
		IdealCustomers:      ideal,
		CurrentCustomers:    current,
		EstimatedLoss:       (ideal - current) * aov,
	}
}
