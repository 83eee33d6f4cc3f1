// Package packet
package packet

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var codecAliases = map[string]encoding.Encoding{
	"":       unicode.UTF8,
	"utf8":   unicode.UTF8,
	"utf-8":  unicode.UTF8,
	"latin1": charmap.ISO8859_1,
	"cp1252": charmap.Windows1252,
}

// TextCodec 套接字读写时的文本编码
type TextCodec struct {
	name     string
	encoding encoding.Encoding
}

func NewTextCodec(name string) (*TextCodec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := codecAliases[key]; ok {
		return &TextCodec{name: key, encoding: enc}, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown text codec %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("text codec %q is not supported", name)
	}
	return &TextCodec{name: key, encoding: enc}, nil
}

func (codec *TextCodec) Name() string { return codec.name }

// Encode 无法表示的字符替换为编码的替代字符
func (codec *TextCodec) Encode(text string) ([]byte, error) {
	if codec.encoding == unicode.UTF8 {
		return []byte(text), nil
	}
	return encoding.ReplaceUnsupported(codec.encoding.NewEncoder()).Bytes([]byte(text))
}

func (codec *TextCodec) Decode(data []byte) (string, error) {
	if codec.encoding == unicode.UTF8 {
		return strings.ToValidUTF8(string(data), "�"), nil
	}
	result, err := codec.encoding.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// EscapeUnicode 将非 ASCII 字符转义为 \uXXXX, 超出 BMP 的字符使用代理对
func EscapeUnicode(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if r < 0x80 {
			builder.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			high, low := utf16.EncodeRune(r)
			_, _ = fmt.Fprintf(&builder, "\\u%04x\\u%04x", high, low)
			continue
		}
		_, _ = fmt.Fprintf(&builder, "\\u%04x", r)
	}
	return builder.String()
}
