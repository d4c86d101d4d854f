package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type EvidenceTrailSuite struct {
	suite.Suite
	trail *EvidenceTrail
}

func (s *EvidenceTrailSuite) SetupTest() {
	s.trail = &EvidenceTrail{}
}

func TestEvidenceTrailSuite(t *testing.T) {
	suite.Run(t, new(EvidenceTrailSuite))
}

func (s *EvidenceTrailSuite) appendStage(stage Stage) error {
	return s.trail.Append(StageResult{
		Stage:      stage,
		Payload:    map[string]string{"stage": string(stage)},
		ProducedAt: time.Now(),
	})
}

// TestOrderEnforcement verifies results can only arrive in pipeline order,
// one per stage.
func (s *EvidenceTrailSuite) TestOrderEnforcement() {
	s.Run("accepts stages in pipeline order", func() {
		for _, stage := range PipelineStages {
			s.Require().NoError(s.appendStage(stage))
		}
		s.True(s.trail.Complete())
	})

	s.Run("rejects an out-of-order stage", func() {
		trail := &EvidenceTrail{}
		err := trail.Append(StageResult{Stage: StageRisk})
		s.Require().Error(err)
		s.False(trail.Complete())
	})

	s.Run("rejects a duplicate stage", func() {
		trail := &EvidenceTrail{}
		s.Require().NoError(trail.Append(StageResult{Stage: StageIntent}))
		s.Error(trail.Append(StageResult{Stage: StageIntent}))
	})

	s.Run("rejects appends past completion", func() {
		trail := &EvidenceTrail{}
		for _, stage := range PipelineStages {
			s.Require().NoError(trail.Append(StageResult{Stage: stage}))
		}
		s.Error(trail.Append(StageResult{Stage: StageDecision}))
	})
}

// TestAccessors verifies Results isolation and Find behavior.
func (s *EvidenceTrailSuite) TestAccessors() {
	s.Run("results returns an isolated copy", func() {
		s.Require().NoError(s.appendStage(StageIntent))
		results := s.trail.Results()
		results[0].Stage = StageDecision

		fresh := s.trail.Results()
		s.Equal(StageIntent, fresh[0].Stage)
	})

	s.Run("find reports produced and missing stages", func() {
		trail := &EvidenceTrail{}
		s.Require().NoError(trail.Append(StageResult{Stage: StageIntent}))

		got, ok := trail.Find(StageIntent)
		s.Require().True(ok)
		s.Equal(StageIntent, got.Stage)

		_, ok = trail.Find(StageDecision)
		s.False(ok)
	})
}
