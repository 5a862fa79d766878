package validation

import (
	"testing"

	"ksfit/domain/fit"
	"ksfit/internal/datasource"
	"ksfit/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestCheckChannels(t *testing.T) {
	file := datasource.BytesFile{Filename: "data.csv", Data: []byte("1\n2\n")}
	emptyFile := datasource.BytesFile{Filename: "empty.csv"}

	tests := []struct {
		name     string
		channels datasource.Channels
		wantCode string
	}{
		{"text only", datasource.Channels{Text: "1 2 3"}, ""},
		{"file only", datasource.Channels{File: file}, ""},
		{"empty file still counts", datasource.Channels{File: emptyFile}, ""},
		{"both populated", datasource.Channels{Text: "1 2 3", File: file}, errors.CodeMutuallyExclusiveInput},
		{"both populated with junk text", datasource.Channels{Text: "not numbers", File: emptyFile}, errors.CodeMutuallyExclusiveInput},
		{"neither", datasource.Channels{}, errors.CodeMissingInput},
		{"whitespace text only", datasource.Channels{Text: " \n\t "}, errors.CodeMissingInput},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.CheckChannels(tt.channels)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}
}

func TestCheckSize(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.CheckSize(fit.Sample{1, 1, 1, 1, 1}))
	assert.NoError(t, v.CheckSize(fit.Sample{1, 2, 3, 4, 5, 6}))

	for _, s := range []fit.Sample{nil, {}, {1, 2, 3, 4}} {
		err := v.CheckSize(s)
		assert.Equal(t, errors.CodeInsufficientData, errors.GetCode(err))
	}
}
