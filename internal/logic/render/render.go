package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format 表示输出文档格式
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"

	DefaultIndent = 4
	minYAMLIndent = 2
)

// ParseFormat 解析输出格式，空串视为 json
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
	}
}

// Renderer 向同一输出流连续写入多份文档。
// YAML 复用同一个 encoder，文档之间以 "---" 分隔；JSON 每份文档独占一行或一段。
type Renderer struct {
	format Format
	json   *json.Encoder
	yaml   *yaml.Encoder
}

// NewRenderer 创建写入 w 的 Renderer，indent <= 0 时 JSON 输出为单行
func NewRenderer(w io.Writer, format Format, indent int) (*Renderer, error) {
	r := &Renderer{format: format}
	switch format {
	case FormatJSON, "":
		r.format = FormatJSON
		r.json = json.NewEncoder(w)
		r.json.SetEscapeHTML(false)
		if indent > 0 {
			r.json.SetIndent("", strings.Repeat(" ", indent))
		}
	case FormatYAML:
		r.yaml = yaml.NewEncoder(w)
		r.yaml.SetIndent(max(indent, minYAMLIndent))
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return r, nil
}

// Render 写入一份文档，字段顺序与结构体声明一致
func (r *Renderer) Render(v interface{}) error {
	if r.format == FormatYAML {
		if err := r.yaml.Encode(v); err != nil {
			return fmt.Errorf("render yaml: %w", err)
		}
		return nil
	}
	if err := r.json.Encode(v); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}

// Close 结束输出流
func (r *Renderer) Close() error {
	if r.yaml != nil {
		return r.yaml.Close()
	}
	return nil
}

// Render 把单份文档写入 w
func Render(w io.Writer, v interface{}, format Format, indent int) error {
	r, err := NewRenderer(w, format, indent)
	if err != nil {
		return err
	}
	if err := r.Render(v); err != nil {
		return err
	}
	return r.Close()
}
