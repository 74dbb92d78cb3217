package input

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/mr-tron/base58"
)

// Encoding 表示消息文本的编码方式
type Encoding string

const (
	EncodingHex    Encoding = "hex"
	EncodingBase64 Encoding = "base64"
	EncodingBase58 Encoding = "base58"
)

// ParseEncoding 解析编码名称，大小写不敏感，空串视为 hex
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(EncodingHex):
		return EncodingHex, nil
	case string(EncodingBase64):
		return EncodingBase64, nil
	case string(EncodingBase58):
		return EncodingBase58, nil
	default:
		return "", fmt.Errorf("unknown input encoding %q (want hex, base64 or base58)", s)
	}
}

// DecodeText 把文本形式的消息还原为字节。
// 所有空白字符会先被去掉，hex 允许带 0x 前缀。
func DecodeText(text string, enc Encoding) ([]byte, error) {
	s := stripSpace(text)
	if s == "" {
		return nil, fmt.Errorf("empty input")
	}

	switch enc {
	case EncodingHex, "":
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("decode hex: %w", err)
		}
		return b, nil
	case EncodingBase64:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("decode base64: %w", err)
		}
		return b, nil
	case EncodingBase58:
		b, err := base58.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("decode base58: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown input encoding %q", enc)
	}
}

// ReadFile 读取文件并按编码还原消息字节
func ReadFile(path string, enc Encoding) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := DecodeText(string(data), enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
