// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type OptionSuite struct {
	suite.Suite
}

func (suite *OptionSuite) newTimer(opts ...TimerOption) (*Timer, error) {
	return NewTimer(
		time.Second,
		nil,
		func() error { return nil },
		append([]TimerOption{WithLogicalClock(NewLogical(Timestamp{}))}, opts...)...,
	)
}

func (suite *OptionSuite) TestWithClockSource() {
	t, err := suite.newTimer(WithClockSource(WallClock))
	suite.Require().NoError(err)
	suite.Equal(WallClock, t.ClockSource())
	suite.IsType(SystemClock{}, t.clock)

	t, err = suite.newTimer(WithClockSource(LogicalClock))
	suite.Require().NoError(err)
	suite.Equal(LogicalClock, t.ClockSource())
	suite.IsType((*Logical)(nil), t.clock)

	var ce *ConfigurationError
	_, err = suite.newTimer(WithClockSource(ClockSource(-3)))
	suite.Require().ErrorAs(err, &ce)
	suite.Equal("clock source", ce.Field)
	suite.Contains(ce.Error(), "clock source")
}

func (suite *OptionSuite) TestNilsIgnored() {
	t, err := suite.newTimer(
		WithLogicalClock(nil),
		WithWallClock(nil),
		WithLogger(nil),
		WithMetrics(nil),
	)

	suite.Require().NoError(err)
	suite.NotNil(t.logical)
	suite.NotNil(t.wall)
	suite.NotNil(t.logger)
	suite.Nil(t.metrics)
}

func (suite *OptionSuite) TestWithLogger() {
	l := zap.NewExample()
	t, err := suite.newTimer(WithLogger(l))
	suite.Require().NoError(err)
	suite.Same(l, t.logger)
}

func (suite *OptionSuite) TestWithMetrics() {
	m, err := NewMetrics(nil)
	suite.Require().NoError(err)

	t, err := suite.newTimer(WithMetrics(m))
	suite.Require().NoError(err)
	suite.Same(m, t.metrics)
}

func TestOption(t *testing.T) {
	suite.Run(t, new(OptionSuite))
}
