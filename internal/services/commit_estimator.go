package services

import (
	"context"

	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/RaviPatel94/Gitstats/pkg/logger"
	"github.com/sirupsen/logrus"
)

// CommitStrategy is one self-contained heuristic for estimating a user's
// total lifetime commit count. A nil estimate or a zero count means
// "inconclusive"; only a strictly positive count is accepted.
type CommitStrategy interface {
	Name() string
	Estimate(ctx context.Context, snap *models.UserSnapshot, creds models.Credentials) (*models.CommitEstimate, error)
}

// CommitEstimator runs strategies strictly sequentially in preference
// order and accepts the first strictly positive count. Later strategies
// are more expensive, so a success gates everything after it. Strategy
// failures never propagate; the arithmetic fallback is accepted
// unconditionally when every data-driven strategy comes up empty.
//
// A genuinely zero-commit account is indistinguishable from "every
// strategy returned an inconclusive zero", so such accounts receive the
// fallback estimate rather than an accurate zero. Accepted limitation.
type CommitEstimator struct {
	strategies []CommitStrategy
	fallback   CommitStrategy
}

func NewCommitEstimator(fallback CommitStrategy, strategies ...CommitStrategy) *CommitEstimator {
	return &CommitEstimator{
		strategies: strategies,
		fallback:   fallback,
	}
}

// Estimate produces a best-effort commit count. It never fails: the
// result is always a non-negative count with a method tag recording
// which strategy produced it.
func (e *CommitEstimator) Estimate(ctx context.Context, snap *models.UserSnapshot, creds models.Credentials) *models.CommitEstimate {
	for _, strategy := range e.strategies {
		estimate, err := strategy.Estimate(ctx, snap, creds)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"strategy": strategy.Name(),
				"username": snap.Login,
			}).WithError(err).Warnf("commit strategy failed, falling through")
			continue
		}
		if estimate == nil || estimate.Count <= 0 {
			logger.WithFields(logrus.Fields{
				"strategy": strategy.Name(),
				"username": snap.Login,
			}).Debugf("commit strategy inconclusive, falling through")
			continue
		}
		return estimate
	}

	estimate, err := e.fallback.Estimate(ctx, snap, creds)
	if err != nil || estimate == nil {
		// The fallback is arithmetic and cannot fail; guard anyway.
		return &models.CommitEstimate{Count: 0, Method: e.fallback.Name()}
	}
	if estimate.Count < 0 {
		estimate.Count = 0
	}
	return estimate
}

// clampNonNegative treats negative counts from any sub-query as zero
// before summation.
func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
