package core

import (
	"strconv"
	"strings"
)

// Record 一次日志调用生成的完整记录，构造后不可变
type Record struct {
	Severity Severity
	Location Location
	Template string
	Message  string
	Fields   []Field
}

// NewRecord 过滤非法字段并执行占位符替换。
// 被丢弃字段对应的错误按出现顺序返回，不影响记录本身。
func NewRecord(sev Severity, loc Location, template string, fields []Field) (Record, []error) {
	var dropped []error
	kept := make([]Field, 0, len(fields))
	for _, f := range fields {
		if err := f.Err(); err != nil {
			dropped = append(dropped, err)
			continue
		}
		if err := ValidateHeader(f.Name); err != nil {
			dropped = append(dropped, err)
			continue
		}
		kept = append(kept, f)
	}

	return Record{
		Severity: sev,
		Location: loc,
		Template: template,
		Message:  Substitute(template, kept),
		Fields:   kept,
	}, dropped
}

// Substitute 单遍从左到右替换 {NAME}，同名字段取第一个；
// 未知占位符原样保留，替换结果不会被再次扫描。
func Substitute(template string, fields []Field) string {
	if len(fields) == 0 || !strings.Contains(template, "{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		close := strings.IndexByte(rest[open+1:], '}')
		if close < 0 {
			b.WriteString(rest)
			break
		}
		close += open + 1

		name := rest[open+1 : close]
		if v, ok := lookup(fields, name); ok {
			b.WriteString(rest[:open])
			b.WriteString(v)
			rest = rest[close+1:]
			continue
		}
		// 保留 "{"，从下一个字符继续扫描，支持 "{{X}" 这种写法
		b.WriteString(rest[:open+1])
		rest = rest[open+1:]
	}
	return b.String()
}

func lookup(fields []Field, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, f := range fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Entries 按固定顺序展开为传输层的键值列表
func (r Record) Entries(service string) []Entry {
	entries := make([]Entry, 0, len(r.Fields)+7)
	entries = append(entries,
		Entry{Key: "MESSAGE", Value: []byte(r.Message)},
		Entry{Key: "LOG2_FMTMSG", Value: []byte(r.Template)},
		Entry{Key: "PRIORITY", Value: []byte(strconv.Itoa(int(r.Severity)))},
		Entry{Key: "CODE_FILE", Value: []byte(r.Location.File)},
		Entry{Key: "CODE_LINE", Value: []byte(strconv.Itoa(r.Location.Line))},
		Entry{Key: "CODE_FUNC", Value: []byte(r.Location.Function)},
	)
	if service != "" {
		entries = append(entries, Entry{Key: "SYSLOG_IDENTIFIER", Value: []byte(service)})
	}
	for _, f := range r.Fields {
		entries = append(entries, Entry{Key: f.Name, Value: []byte(f.Value)})
	}
	return entries
}
