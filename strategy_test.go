// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	msgs []string
}

func (s *recordingSink) Report(_ context.Context, msg string) {
	s.msgs = append(s.msgs, msg)
}

func TestHandle(t *testing.T) {
	errs := []error{
		MissingRequiredFieldError{Field: "HOST"},
		TypeCoercionError{Field: "PORT", Type: TypeNumber},
	}
	expectedMsg := "HOST is required but not defined\nPORT cannot be parsed as type 'number'"

	t.Run("will return an AggregateError", func(t *testing.T) {
		t.Run("if the strategy is throw", func(t *testing.T) {
			sink := &recordingSink{}

			err := Handle(context.Background(), errs, StrategyThrow, sink)

			var aerr *AggregateError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, expectedMsg, aerr.Error())
			assert.Empty(t, sink.msgs)

			var merr MissingRequiredFieldError
			assert.ErrorAs(t, err, &merr)
		})
	})

	t.Run("will report the aggregate message", func(t *testing.T) {
		t.Run("if the strategy is log", func(t *testing.T) {
			sink := &recordingSink{}

			err := Handle(context.Background(), errs, StrategyLog, sink)
			require.NoError(t, err)
			assert.Equal(t, []string{expectedMsg}, sink.msgs)
		})
	})

	t.Run("will do nothing", func(t *testing.T) {
		testCases := []struct {
			name     string
			errs     []error
			strategy ErrorStrategy
		}{
			{name: "if the strategy is silent", errs: errs, strategy: StrategySilent},
			{name: "if the strategy is default", errs: errs, strategy: StrategyDefault},
			{name: "if the strategy is empty", errs: errs, strategy: ""},
			{name: "if there are no errors and the strategy is throw", strategy: StrategyThrow},
			{name: "if there are no errors and the strategy is log", strategy: StrategyLog},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				sink := &recordingSink{}

				err := Handle(context.Background(), testCase.errs, testCase.strategy, sink)
				assert.NoError(t, err)
				assert.Empty(t, sink.msgs)
			})
		}
	})
}
