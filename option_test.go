package gotransport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestClientOptionYAMLRoundTrip(t *testing.T) {
	cases := []ClientOption{
		{Empty: &EmptyOption{}},
		{Tcp: &TCPClientOption{Addr: "127.0.0.1", Port: 80, TCPNoDelay: true}},
		{Ws: &WsClientOption{Addr: "example.com", Port: 443, Path: "/ws"}},
	}

	for _, c := range cases {
		out, err := yaml.Marshal(c)
		require.NoError(t, err)

		var got ClientOption

		require.NoError(t, yaml.Unmarshal(out, &got))
		assert.Equal(t, c.Kind(), got.Kind())
	}
}

func TestServerOptionYAMLRoundTrip(t *testing.T) {
	in := ServerOption{Ws: &WsServerOption{Listen: "0.0.0.0:443", Path: "/ws"}}

	out, err := yaml.Marshal(in)
	require.NoError(t, err)

	var got ServerOption

	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, "Ws", got.Kind())
	assert.Equal(t, in.Ws.Listen, got.Ws.Listen)
}

func TestTLSClientOptionALPNOrderPreserved(t *testing.T) {
	in := TLSClientOption{ALPN: []string{"h2", "http/1.1", "spdy/3"}}

	out, err := yaml.Marshal(in)
	require.NoError(t, err)

	var got TLSClientOption

	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, in.ALPN, got.ALPN)
}

func TestTLSCertOptionYAMLRoundTrip(t *testing.T) {
	in := TLSCertOption{Text: &TLSCertTextOption{Certs: []string{"a", "b"}, Key: "k"}}

	out, err := yaml.Marshal(in)
	require.NoError(t, err)

	var got TLSCertOption

	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, "Text", got.Kind())
	assert.Equal(t, in.Text.Certs, got.Text.Certs)
}

func TestClientOptionUnrecognizedVariant(t *testing.T) {
	var got ClientOption

	err := yaml.Unmarshal([]byte("bogus: {}\n"), &got)
	require.Error(t, err)
}
