package gotransport

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TransportClientOption configures a dialing-side transport.
type TransportClientOption struct {
	Opt ClientOption     `yaml:"opt"`
	TLS *TLSClientOption `yaml:"tls,omitempty"`
}

// TransportServerOption configures an accepting-side transport.
type TransportServerOption struct {
	Opt ServerOption     `yaml:"opt"`
	TLS *TLSServerOption `yaml:"tls,omitempty"`
}

// EmptyOption carries no fields; present only so ClientOption has a
// concrete Empty variant payload to tag.
type EmptyOption struct{}

// TCPClientOption configures the TCP client variant.
type TCPClientOption struct {
	Addr       string `yaml:"addr"`
	Port       uint16 `yaml:"port"`
	TCPNoDelay bool   `yaml:"tcp_nodelay"`
}

// WsClientOption configures the WebSocket client variant.
type WsClientOption struct {
	Addr       string `yaml:"addr"`
	Port       uint16 `yaml:"port"`
	Path       string `yaml:"path"`
	TCPNoDelay bool   `yaml:"tcp_nodelay"`
}

// TCPServerOption configures the TCP server variant.
type TCPServerOption struct {
	Listen     string `yaml:"listen"`
	TCPNoDelay bool   `yaml:"tcp_nodelay"`
}

// WsServerOption configures the WebSocket server variant.
type WsServerOption struct {
	Listen     string `yaml:"listen"`
	Path       string `yaml:"path"`
	TCPNoDelay bool   `yaml:"tcp_nodelay"`
}

// ClientOption is the externally-tagged union {Empty|Tcp|Ws}, modeled
// after the source's serde-tagged enum and decoded the same way: the
// YAML mapping carries exactly one of the keys "empty", "tcp", "ws".
type ClientOption struct {
	Empty *EmptyOption
	Tcp   *TCPClientOption
	Ws    *WsClientOption
}

// Kind returns the stable tag string for the populated variant.
func (o ClientOption) Kind() string {
	switch {
	case o.Tcp != nil:
		return "Tcp"
	case o.Ws != nil:
		return "Ws"
	default:
		return "Empty"
	}
}

// MarshalYAML implements yaml.Marshaler.
func (o ClientOption) MarshalYAML() (any, error) {
	switch {
	case o.Tcp != nil:
		return map[string]any{"tcp": o.Tcp}, nil
	case o.Ws != nil:
		return map[string]any{"ws": o.Ws}, nil
	default:
		return map[string]any{"empty": EmptyOption{}}, nil
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *ClientOption) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("client option: %w", err)
	}

	switch {
	case has(raw, "tcp"):
		o.Tcp = &TCPClientOption{}

		return decodeKey(raw, "tcp", o.Tcp)
	case has(raw, "ws"):
		o.Ws = &WsClientOption{}

		return decodeKey(raw, "ws", o.Ws)
	case has(raw, "empty"):
		o.Empty = &EmptyOption{}

		return nil
	default:
		return fmt.Errorf("client option: unrecognized variant, want one of empty/tcp/ws")
	}
}

// ServerOption is the externally-tagged union {Tcp|Ws}.
type ServerOption struct {
	Tcp *TCPServerOption
	Ws  *WsServerOption
}

// Kind returns the stable tag string for the populated variant.
func (o ServerOption) Kind() string {
	if o.Ws != nil {
		return "Ws"
	}

	return "Tcp"
}

// MarshalYAML implements yaml.Marshaler.
func (o ServerOption) MarshalYAML() (any, error) {
	if o.Ws != nil {
		return map[string]any{"ws": o.Ws}, nil
	}

	return map[string]any{"tcp": o.Tcp}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *ServerOption) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("server option: %w", err)
	}

	switch {
	case has(raw, "tcp"):
		o.Tcp = &TCPServerOption{}

		return decodeKey(raw, "tcp", o.Tcp)
	case has(raw, "ws"):
		o.Ws = &WsServerOption{}

		return decodeKey(raw, "ws", o.Ws)
	default:
		return fmt.Errorf("server option: unrecognized variant, want one of tcp/ws")
	}
}

// TLSClientOption configures the TLS policy for a dialing transport.
type TLSClientOption struct {
	Insecure   bool     `yaml:"insecure"`
	ALPN       []string `yaml:"alpn,omitempty"`
	EnableSNI  bool     `yaml:"enable_sni"`
	ServerName string   `yaml:"server_name,omitempty"`
}

// DefaultTLSClientOption returns the option defaults named in the data
// model: insecure=false, enable_sni=true, server_name="".
func DefaultTLSClientOption() TLSClientOption {
	return TLSClientOption{EnableSNI: true}
}

// TLSServerOption configures the TLS policy for an accepting transport.
type TLSServerOption struct {
	ALPN        []string      `yaml:"alpn,omitempty"`
	Certificate TLSCertOption `yaml:"certificate"`
}

// TLSCertFileOption loads a certificate chain and key from the
// filesystem.
type TLSCertFileOption struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

// TLSCertTextOption carries a certificate chain and key inline.
type TLSCertTextOption struct {
	Certs []string `yaml:"certs"`
	Key   string   `yaml:"key"`
}

// TLSCertOption is the externally-tagged union {File|Text}.
type TLSCertOption struct {
	File *TLSCertFileOption
	Text *TLSCertTextOption
}

// Kind returns the stable tag string for the populated variant.
func (o TLSCertOption) Kind() string {
	if o.Text != nil {
		return "Text"
	}

	return "File"
}

// MarshalYAML implements yaml.Marshaler.
func (o TLSCertOption) MarshalYAML() (any, error) {
	if o.Text != nil {
		return map[string]any{"text": o.Text}, nil
	}

	return map[string]any{"file": o.File}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *TLSCertOption) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("tls cert option: %w", err)
	}

	switch {
	case has(raw, "file"):
		o.File = &TLSCertFileOption{}

		return decodeKey(raw, "file", o.File)
	case has(raw, "text"):
		o.Text = &TLSCertTextOption{}

		return decodeKey(raw, "text", o.Text)
	default:
		return fmt.Errorf("tls cert option: unrecognized variant, want one of file/text")
	}
}

func has(m map[string]yaml.Node, key string) bool {
	_, ok := m[key]

	return ok
}

func decodeKey(m map[string]yaml.Node, key string, out any) error {
	n := m[key]

	return n.Decode(out)
}
