package ik

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynxkit/al5d/pkg/frame"
)

func TestSolveForwardRoundTrip(t *testing.T) {
	s := NewSolver()

	// Postures inside the workspace and on the elbow-up branch.
	cases := []JointAngles{
		{},
		{Base: 0.3, Shoulder: -0.2, Elbow: 0.4, WristPitch: 0.2, WristRoll: 0.5},
		{Base: -0.7, Shoulder: 0.1, Elbow: -0.3, WristPitch: -0.4, WristRoll: 1.0},
		{Base: 1.2, Shoulder: -0.5, Elbow: 0.2, WristPitch: 0.6, WristRoll: -2.0},
		{Base: -1.4, Shoulder: 0.25, Elbow: 0.45, WristPitch: -0.1, WristRoll: 0},
	}

	for _, want := range cases {
		pose := s.Forward(want)
		got, err := s.Solve(pose)
		require.NoError(t, err, "posture %+v", want)

		assert.InDelta(t, want.Base, got.Base, 1e-9)
		assert.InDelta(t, want.Shoulder, got.Shoulder, 1e-9)
		assert.InDelta(t, want.Elbow, got.Elbow, 1e-9)
		assert.InDelta(t, want.WristPitch, got.WristPitch, 1e-9)
		assert.InDelta(t, want.WristRoll, got.WristRoll, 1e-9)
	}
}

func TestSolveKnownTarget(t *testing.T) {
	// Shoulder-to-elbow 146 mm, elbow-to-wrist 187 mm; wrist point 200 mm out
	// and 50 mm above the shoulder, identity orientation.
	s := &Solver{BaseHeight: 67.31, Humerus: 146, Ulna: 187}
	target := frame.Trans(0, 200, s.BaseHeight+50)

	got, err := s.Solve(target)
	require.NoError(t, err)

	// Deterministic: the same target always yields the same tuple.
	again, err := s.Solve(target)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	// The identity orientation's roll resolves to -90 degrees in the wrist.
	assert.InDelta(t, -math.Pi/2, got.WristRoll, 1e-9)

	// Forward kinematics reproduces the wrist point within a millimetre.
	p := s.Forward(got).Translation()
	assert.InDelta(t, 0, p.X, 1)
	assert.InDelta(t, 200, p.Y, 1)
	assert.InDelta(t, s.BaseHeight+50, p.Z, 1)
}

func TestSolveUnreachableFar(t *testing.T) {
	s := &Solver{BaseHeight: 67.31, Humerus: 146, Ulna: 187}

	// 400 mm exceeds the 333 mm reach.
	_, err := s.Solve(frame.Trans(0, 400, s.BaseHeight+50))
	require.Error(t, err)

	var unreachable *UnreachableError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, 400.0, unreachable.Target.Y)
	assert.Equal(t, 333.0, unreachable.Reach)
}

func TestSolveUnreachableTooClose(t *testing.T) {
	s := NewSolver()

	// Inside the annulus: closer to the shoulder than |humerus - ulna|.
	_, err := s.Solve(frame.Trans(0, 10, s.BaseHeight))
	var unreachable *UnreachableError
	require.True(t, errors.As(err, &unreachable))
}

func TestSolveNeverNaN(t *testing.T) {
	s := NewSolver()
	targets := []frame.Frame{
		frame.Trans(0, 1000, 0),
		frame.Trans(500, 500, 500),
		frame.Trans(0, 0, 2000),
	}
	for _, target := range targets {
		j, err := s.Solve(target)
		require.Error(t, err)
		for _, a := range j.Angles() {
			assert.False(t, math.IsNaN(a))
		}
	}
}

func TestSolveElbowUpBranch(t *testing.T) {
	s := NewSolver()
	j, err := s.Solve(frame.Trans(0, 250, s.BaseHeight+20))
	require.NoError(t, err)

	// Elbow-up keeps the geometric elbow angle non-positive; home-relative
	// that is at most +90 degrees.
	assert.LessOrEqual(t, j.Elbow, math.Pi/2)
	assert.Greater(t, j.Elbow, -math.Pi/2)
}

func TestForwardHomePose(t *testing.T) {
	s := NewSolver()
	pose := s.Forward(JointAngles{})
	p := pose.Translation()

	// Home: upper arm vertical, forearm horizontal along +y, approach +y.
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, s.Ulna, p.Y, 1e-9)
	assert.InDelta(t, s.BaseHeight+s.Humerus, p.Z, 1e-9)

	a := pose.ApproachAxis()
	assert.InDelta(t, 0, a.X, 1e-9)
	assert.InDelta(t, 1, a.Y, 1e-9)
	assert.InDelta(t, 0, a.Z, 1e-9)
}

func TestUnreachableErrorMessage(t *testing.T) {
	err := &UnreachableError{Reach: 333.38}
	assert.Contains(t, err.Error(), "outside the reachable workspace")
	assert.Contains(t, err.Error(), "333.4")
}
