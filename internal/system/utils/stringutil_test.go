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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StringUtilTestSuite struct {
	suite.Suite
}

func TestStringUtilSuite(t *testing.T) {
	suite.Run(t, new(StringUtilTestSuite))
}

func (suite *StringUtilTestSuite) TestDeduplicateStrings() {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "NoDuplicates",
			input:    []string{"openid", "profile", "email"},
			expected: []string{"openid", "profile", "email"},
		},
		{
			name:     "DuplicatesRemovedInFirstOccurrenceOrder",
			input:    []string{"a", "b", "a", "c", "b"},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "AllSameValue",
			input:    []string{"openid", "openid", "openid"},
			expected: []string{"openid"},
		},
		{
			name:     "EmptyInput",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "NilInput",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "EmptyStringsPreserved",
			input:    []string{"", "a", ""},
			expected: []string{"", "a"},
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeduplicateStrings(tc.input))
		})
	}
}
