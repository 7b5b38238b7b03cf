/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogTestSuite struct {
	suite.Suite
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) TestGetLoggerReturnsSingleton() {
	first := GetLogger()
	second := GetLogger()

	assert.NotNil(suite.T(), first)
	assert.Same(suite.T(), first, second)
}

func (suite *LogTestSuite) TestLoggingDoesNotPanic() {
	logger := GetLogger()

	assert.NotPanics(suite.T(), func() {
		logger.Debug("debug message", zap.String("key", "value"))
		logger.Info("info message", zap.String("key", "value"))
		logger.Warn("warn message", zap.Int("count", 1))
		Sync()
	})
}

func (suite *LogTestSuite) TestResolveLogLevel() {
	testCases := []struct {
		name          string
		levelValue    string
		expectedLevel zapcore.Level
	}{
		{
			name:          "UnsetDefaultsToInfo",
			levelValue:    "",
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name:          "DebugLevel",
			levelValue:    "debug",
			expectedLevel: zapcore.DebugLevel,
		},
		{
			name:          "ErrorLevel",
			levelValue:    "error",
			expectedLevel: zapcore.ErrorLevel,
		},
		{
			name:          "InvalidDefaultsToInfo",
			levelValue:    "not-a-level",
			expectedLevel: zapcore.InfoLevel,
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			if tc.levelValue != "" {
				t.Setenv(LogLevelEnvironmentVariable, tc.levelValue)
			}
			assert.Equal(t, tc.expectedLevel, resolveLogLevel())
		})
	}
}
