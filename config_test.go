// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) TestDefaults() {
	var cfg Config
	suite.Equal(DefaultNodeName, cfg.NodeName())
	suite.Equal(DefaultSpinInterval, cfg.Interval())
	suite.Equal(DefaultClockSource, cfg.ClockSource)
}

func (suite *ConfigTestSuite) TestUnmarshalYAML() {
	const text = `
name: robot
spinInterval: 5ms
clockSource: wall
strictPeriod: true
`

	var cfg Config
	suite.Require().NoError(yaml.Unmarshal([]byte(text), &cfg))
	suite.Equal(
		Config{
			Name:         "robot",
			SpinInterval: 5 * time.Millisecond,
			ClockSource:  WallClock,
			StrictPeriod: true,
		},
		cfg,
	)

	suite.Equal("robot", cfg.NodeName())
	suite.Equal(5*time.Millisecond, cfg.Interval())
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLInvalidClockSource() {
	var cfg Config
	suite.ErrorIs(
		yaml.Unmarshal([]byte("clockSource: sundial"), &cfg),
		ErrInvalidClockSource,
	)
}

func (suite *ConfigTestSuite) TestJSON() {
	src := Config{
		Name:        "sim",
		ClockSource: LogicalClock,
	}

	data, err := json.Marshal(src)
	suite.Require().NoError(err)
	suite.JSONEq(
		`{"name": "sim", "spinInterval": 0, "clockSource": "logical", "strictPeriod": false}`,
		string(data),
	)
}

func (suite *ConfigTestSuite) TestNewNodeFromConfig() {
	suite.Run("Default", func() {
		n, err := NewNodeFromConfig(Config{})
		suite.Require().NoError(err)
		suite.Equal(DefaultNodeName, n.Name())
		suite.Equal(DefaultClockSource, n.source)
		suite.False(n.strict)
	})

	suite.Run("Full", func() {
		n, err := NewNodeFromConfig(
			Config{
				Name:         "full",
				ClockSource:  WallClock,
				StrictPeriod: true,
			},
		)

		suite.Require().NoError(err)
		suite.Equal("full", n.Name())

		t, err := n.CreateTimer(time.Second, func() error { return nil })
		suite.Require().NoError(err)
		suite.Equal(WallClock, t.ClockSource())

		_, err = n.CreateTimer(-time.Second, func() error { return nil })
		suite.ErrorIs(err, ErrNegativePeriod)
	})

	suite.Run("InvalidClockSource", func() {
		n, err := NewNodeFromConfig(Config{ClockSource: ClockSource(12)})
		suite.Nil(n)
		suite.ErrorIs(err, ErrInvalidClockSource)
	})
}

func TestConfig(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
