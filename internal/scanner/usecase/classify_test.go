package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/scanner/entity"
)

type mockEncoder struct{ mock.Mock }

func (m *mockEncoder) Encode(text string) []int {
	return m.Called(text).Get(0).([]int)
}

type mockModel struct{ mock.Mock }

func (m *mockModel) Predict(ctx context.Context, sequence []int) (float64, error) {
	args := m.Called(ctx, sequence)
	return args.Get(0).(float64), args.Error(1)
}

func TestUsecase_Classify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		url   string
		score float64
		want  entity.Verdict
	}{
		{name: "Phishing", url: "http://paypa1-login.example", score: 0.93, want: entity.VerdictPhishing},
		{name: "AtThreshold", url: "http://edge.example", score: 0.5, want: entity.VerdictPhishing},
		{name: "JustBelow", url: "http://edge.example", score: 0.499999, want: entity.VerdictSafe},
		{name: "Safe", url: " https://golang.org ", score: 0.01, want: entity.VerdictSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, mdl := new(mockEncoder), new(mockModel)
			seq := []int{4, 2, 0}
			enc.On("Encode", mock.Anything).Return(seq).Once()
			mdl.On("Predict", mock.Anything, seq).Return(tt.score, nil).Once()

			uc := New(Dependency{Encoder: enc, Predictor: mdl, Instrument: instrument.NewNoop()})

			out, err := uc.Classify(ctx, ClassifyInput{URL: tt.url})

			require.NoError(t, err)
			assert.True(t, out.HasResult)
			assert.Equal(t, tt.want, out.Result.Verdict)
			assert.InDelta(t, tt.score, out.Result.Score, 1e-9)
			enc.AssertCalled(t, "Encode", out.Result.URL)
		})
	}
}

func TestUsecase_Classify_EmptyURL(t *testing.T) {
	enc, mdl := new(mockEncoder), new(mockModel)
	uc := New(Dependency{Encoder: enc, Predictor: mdl, Instrument: instrument.NewNoop()})

	out, err := uc.Classify(context.Background(), ClassifyInput{URL: ""})

	require.NoError(t, err)
	assert.False(t, out.HasResult)
	enc.AssertNotCalled(t, "Encode", mock.Anything)
	mdl.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestUsecase_Classify_WhitespaceURLIsScored(t *testing.T) {
	enc, mdl := new(mockEncoder), new(mockModel)
	enc.On("Encode", "   ").Return([]int{0, 0}).Once()
	mdl.On("Predict", mock.Anything, []int{0, 0}).Return(0.12, nil).Once()
	uc := New(Dependency{Encoder: enc, Predictor: mdl, Instrument: instrument.NewNoop()})

	out, err := uc.Classify(context.Background(), ClassifyInput{URL: "   "})

	require.NoError(t, err)
	assert.True(t, out.HasResult)
	assert.Equal(t, entity.Result{URL: "   ", Score: 0.12, Verdict: entity.VerdictSafe}, out.Result)
	mdl.AssertExpectations(t)
}

func TestUsecase_Classify_ModelDown(t *testing.T) {
	enc, mdl := new(mockEncoder), new(mockModel)
	enc.On("Encode", "http://x.example").Return([]int{1})
	mdl.On("Predict", mock.Anything, []int{1}).Return(0.0, assert.AnError)
	uc := New(Dependency{Encoder: enc, Predictor: mdl, Instrument: instrument.NewNoop()})

	_, err := uc.Classify(context.Background(), ClassifyInput{URL: "http://x.example"})

	require.True(t, goerror.HasCode(err, goerror.CodeUnavailable))
	assert.EqualError(t, err, "Classifier is unavailable")
}
