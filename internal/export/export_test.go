package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/dayplan/internal/model"
)

var list = []model.Task{
	{ID: 1, Text: "Write report", Completed: true},
	{ID: 2, Text: "Call client, then email"},
}

func newExporter() *Exporter {
	e := New("My Tasks")
	e.Now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return e
}

func TestExport_JSON(t *testing.T) {
	b, err := newExporter().Export(list, "JSON")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":1,"text":"Write report","completed":true},
		{"id":2,"text":"Call client, then email","completed":false}
	]`, string(b))
}

func TestExport_CSV(t *testing.T) {
	b, err := newExporter().Export(list, "csv")
	require.NoError(t, err)
	assert.Equal(t, "id,text,completed\n1,Write report,true\n2,\"Call client, then email\",false\n", string(b))
}

func TestExport_PDF(t *testing.T) {
	b, err := newExporter().Export(list, "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	b, err = newExporter().Export(nil, "pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := newExporter().Export(list, "xlsx")
	assert.Error(t, err)
}
