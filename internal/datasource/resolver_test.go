package datasource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"ksfit/domain/fit"
	"ksfit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseTextKeepsOrderAndDropsJunk(t *testing.T) {
	got := ParseText("3, 1  abc,2\n\t2 , 1e2,-0.5 x9 .25 7.")
	assert.Equal(t, fit.Sample{3, 1, 2, 2, 100, -0.5, 0.25, 7}, got)
}

func TestParseTextNeverInventsZeros(t *testing.T) {
	// Leading separators and empty tokens must not turn into values
	got := ParseText("  ,, 4,,5 ,")
	assert.Equal(t, fit.Sample{4, 5}, got)
}

func TestParseTextRejectsPartialAndNonFiniteTokens(t *testing.T) {
	got := ParseText("12abc Infinity NaN inf 1e999 1_000 0x1F 0b11 -0x10 5")
	assert.Equal(t, fit.Sample{31, 3, 5}, got)
}

func TestParseTextWhollyNonNumeric(t *testing.T) {
	got := ParseText("alpha beta, gamma")
	assert.Empty(t, got)
}

func TestParseCSVFirstColumn(t *testing.T) {
	got := ParseCSV("1,foo\nbar\n3.5,x\n")
	assert.Equal(t, fit.Sample{1, 3.5}, got)
}

func TestParseCSVLeadingNumericPrefix(t *testing.T) {
	got := ParseCSV("value,label\r\n  12kg,a\r\n\r\n-4e1,b\r\n.5\r\n   \r\nx1\r\n7.25e\r\n")
	assert.Equal(t, fit.Sample{12, -40, 0.5, 7.25}, got)
}

func TestResolveTextChannel(t *testing.T) {
	r := NewResolver(0)
	sample, err := r.Resolve(Channels{Text: "1 2 3 4 5"})
	require.NoError(t, err)
	assert.Equal(t, fit.Sample{1, 2, 3, 4, 5}, sample)
}

func TestResolveFileChannel(t *testing.T) {
	r := NewResolver(0)
	sample, err := r.Resolve(Channels{File: BytesFile{Filename: "data.csv", Data: []byte("1,a\n2,b\n3\n")}})
	require.NoError(t, err)
	assert.Equal(t, fit.Sample{1, 2, 3}, sample)
}

func TestResolveFileWithoutNumbers(t *testing.T) {
	r := NewResolver(0)
	_, err := r.Resolve(Channels{File: BytesFile{Filename: "labels.csv", Data: []byte("a,b\nc,d\n\n")}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNoNumericData))
}

func TestResolveEmptyChannels(t *testing.T) {
	r := NewResolver(0)
	_, err := r.Resolve(Channels{Text: "   \n"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeEmptyInput))
}

func TestResolveFileTooLarge(t *testing.T) {
	r := NewResolver(8)
	_, err := r.Resolve(Channels{File: BytesFile{Filename: "big.csv", Data: []byte("1\n2\n3\n4\n5\n6\n")}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeFileUnreadable))
}

func TestResolveOversizedFile(t *testing.T) {
	r := NewResolver(0)
	ch := Channels{File: OversizedFile{Filename: "big.csv", Limit: 2 << 20}}
	assert.True(t, ch.HasFile())

	_, err := r.Resolve(ch)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeFileUnreadable))
	assert.Equal(t, "Could not process the file: file exceeds the 2.0 MB limit", errors.UserMessage(err))
}

type brokenFile struct{}

func (brokenFile) Name() string                 { return "broken.csv" }
func (brokenFile) Open() (io.ReadCloser, error) { return nil, fmt.Errorf("permission denied") }

func TestResolveUnreadableFile(t *testing.T) {
	r := NewResolver(0)
	_, err := r.Resolve(Channels{File: brokenFile{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeFileUnreadable))
	assert.Contains(t, errors.UserMessage(err), "permission denied")
}

func TestResolvePathFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte("10\n20\n30\n"), 0o644))

	r := NewResolver(0)
	sample, err := r.Resolve(Channels{File: PathFile(path)})
	require.NoError(t, err)
	assert.Equal(t, fit.Sample{10, 20, 30}, sample)
	assert.Equal(t, "sample.csv", PathFile(path).Name())
}

func TestResolveWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "value"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 1.5))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "ignored"))
	require.NoError(t, f.SetCellValue("Sheet1", "A4", 3))
	require.NoError(t, f.SetCellValue("Sheet1", "A5", "n/a"))
	require.NoError(t, f.SetCellValue("Sheet1", "A6", "-2"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	r := NewResolver(0)
	sample, err := r.Resolve(Channels{File: BytesFile{Filename: "Sample.XLSX", Data: buf.Bytes()}})
	require.NoError(t, err)
	assert.Equal(t, fit.Sample{1.5, 3, -2}, sample)
}

func TestResolveCorruptWorkbook(t *testing.T) {
	r := NewResolver(0)
	_, err := r.Resolve(Channels{File: BytesFile{Filename: "broken.xlsx", Data: []byte("not a zip")}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeFileUnreadable))
}
