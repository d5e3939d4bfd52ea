package render

import (
	"bytes"
	"testing"

	"qwiic-go/errcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Addr string `json:"addr" yaml:"addr"`
	Type string `json:"type" yaml:"type"`
}

var sample = Table{
	Header: []string{"ADDR", "TYPE"},
	Rows:   [][]string{{"0x60", "proximity"}, {"0x60", "scmd"}},
	Data:   []row{{"0x60", "proximity"}, {"0x60", "scmd"}},
}

func TestTableAligned(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "table", sample))
	assert.Equal(t, "ADDR  TYPE\n0x60  proximity\n0x60  scmd\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", sample))
	assert.JSONEq(t, `[{"addr":"0x60","type":"proximity"},{"addr":"0x60","type":"scmd"}]`, buf.String())
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "yaml", sample))
	assert.YAMLEq(t, "- {addr: \"0x60\", type: proximity}\n- {addr: \"0x60\", type: scmd}\n", buf.String())
}

func TestUnknownFormat(t *testing.T) {
	assert.ErrorIs(t, Write(&bytes.Buffer{}, "xml", sample), errcode.Unsupported)
}
