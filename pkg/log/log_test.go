// Copyright 2019 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ipv6lab/topogen/pkg/log"
	"github.com/ipv6lab/topogen/private/config"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in        string
		level     log.Level
		assertErr assert.ErrorAssertionFunc
	}{
		{"debug", log.DebugLevel, assert.NoError},
		{"INFO", log.InfoLevel, assert.NoError},
		{"error", log.ErrorLevel, assert.NoError},
		{"crit", 0, assert.Error},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			lvl, err := log.ParseLevel(tc.in)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.level, lvl)
		})
	}
}

func TestCtx(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := log.FromZap(zap.New(core)).New("run", "grid6")
	ctx := log.CtxWith(context.Background(), l)
	log.FromCtx(ctx).Info("planned", "nodes", 36)

	ctx, labeled := log.WithLabels(ctx, "stage", "addrplan")
	labeled.Debug("allocated")
	log.FromCtx(ctx).Debug("again")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "planned", entries[0].Message)
	assert.Equal(t, "grid6", entries[0].ContextMap()["run"])
	assert.Equal(t, "addrplan", entries[2].ContextMap()["stage"])
}

func TestFromCtxRoot(t *testing.T) {
	assert.NotNil(t, log.FromCtx(context.Background()))
}

func TestConfigSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg log.Config
	cfg.Sample(&sample, nil, nil)

	var decoded log.Config
	require.NoError(t, config.Decode(sample.Bytes(), &decoded))
	decoded.InitDefaults()
	require.NoError(t, decoded.Validate())
	assert.Equal(t, log.DefaultConsoleLevel, decoded.Console.Level)
	assert.Equal(t, log.DefaultConsoleFormat, decoded.Console.Format)
}

func TestConfigValidate(t *testing.T) {
	cfg := log.Config{Console: log.ConsoleConfig{Level: "info", Format: "xml"}}
	assert.Error(t, cfg.Validate())
	assert.Error(t, log.Setup(cfg))
}
