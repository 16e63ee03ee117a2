package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainAdapter_Text(t *testing.T) {
	adapter := NewPlainAdapter()

	text, err := adapter.Text([]byte("\ufeffPolicy Number: POL1\r\nLocation: Pune\rClaim Type: Theft"))
	require.NoError(t, err)
	assert.Equal(t, "Policy Number: POL1\nLocation: Pune\nClaim Type: Theft", text)
}

func TestPlainAdapter_InvalidUTF8(t *testing.T) {
	adapter := NewPlainAdapter()

	text, err := adapter.Text([]byte("Location: \xffDelhi"))
	require.NoError(t, err)
	assert.Equal(t, "Location: \uFFFDDelhi", text)
}

func TestHTMLAdapter_CanHandle(t *testing.T) {
	adapter := NewHTMLAdapter()

	assert.True(t, adapter.CanHandle("text/html"))
	assert.True(t, adapter.CanHandle("TEXT/HTML; charset=utf-8"))
	assert.True(t, adapter.CanHandle("application/xhtml+xml"))
	assert.False(t, adapter.CanHandle("text/plain"))
}

func TestHTMLAdapter_BlocksBecomeLines(t *testing.T) {
	adapter := NewHTMLAdapter()

	body := `<html><head><title>FNOL</title><style>p{color:red}</style></head>
<body>
  <h1>First Notice of Loss</h1>
  <p>Policy Number: POL123456</p>
  <div>Incident   Date: 15-03-2024</div>
  <script>var x = "Estimated Damage: 1";</script>
  <table>
    <tr><td>Claim Type:</td><td>Bodily Injury</td></tr>
    <tr><td>Estimated Damage:</td><td>35000</td></tr>
  </table>
</body></html>`

	text, err := adapter.Text([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"First Notice of Loss",
		"Policy Number: POL123456",
		"Incident Date: 15-03-2024",
		"Claim Type: Bodily Injury",
		"Estimated Damage: 35000",
	}, "\n"), text)
	assert.NotContains(t, text, "FNOL\n")
	assert.NotContains(t, text, "color")
}

func TestRegistry_FindAdapter(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t, "html", registry.FindAdapter("text/html; charset=utf-8").Name())
	assert.Equal(t, "plain", registry.FindAdapter("text/plain").Name())
	assert.Equal(t, "plain", registry.FindAdapter("application/octet-stream").Name())
	assert.Equal(t, "plain", registry.FindAdapter("").Name())
}

func TestLoader_LoadFiles(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "claim one.txt")
	htm := filepath.Join(dir, "form.html")
	require.NoError(t, os.WriteFile(txt, []byte("Location: Pune\r\n"), 0644))
	require.NoError(t, os.WriteFile(htm, []byte("<p>Location: Delhi</p>"), 0644))

	loader := NewLoader(0)

	doc, err := loader.Load(txt)
	require.NoError(t, err)
	assert.Equal(t, "plain", doc.Adapter)
	assert.Equal(t, "claim-one", doc.Name)
	assert.Equal(t, "Location: Pune\n", doc.Text)
	assert.Equal(t, txt, doc.Source)

	doc, err = loader.Load(htm)
	require.NoError(t, err)
	assert.Equal(t, "html", doc.Adapter)
	assert.Equal(t, "form", doc.Name)
	assert.Equal(t, "Location: Delhi", doc.Text)
}

func TestLoader_SniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inbox.fnol")
	require.NoError(t, os.WriteFile(path, []byte("<html><body><p>Claimant: Sam</p></body></html>"), 0644))

	doc, err := NewLoader(0).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "html", doc.Adapter)
	assert.Equal(t, "Claimant: Sam", doc.Text)
}

func TestLoader_Stdin(t *testing.T) {
	loader := NewLoader(0)
	loader.stdin = strings.NewReader("Policy Number: POL9")

	doc, err := loader.Load(StdinSource)
	require.NoError(t, err)
	assert.Equal(t, "stdin", doc.Name)
	assert.Equal(t, "Policy Number: POL9", doc.Text)
}

func TestLoader_TooLarge(t *testing.T) {
	loader := NewLoader(8)

	_, err := loader.Read(strings.NewReader("123456789"), "big.txt", "text/plain")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooLarge))

	doc, err := loader.Read(strings.NewReader("12345678"), "ok.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "12345678", doc.Text)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(0).Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorContains(t, err, "open document")
}

func TestDocumentName(t *testing.T) {
	assert.Equal(t, "stdin", documentName("-"))
	assert.Equal(t, "claim", documentName("/tmp/in/claim.txt"))
	assert.Equal(t, "a_b", documentName("a:b.html"))
	assert.Equal(t, ".hidden", documentName(".hidden"))
	assert.Len(t, documentName(strings.Repeat("x", 150)+".txt"), 100)
}
