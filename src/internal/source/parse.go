// FILE: enlight/src/internal/source/parse.go
package source

import (
	"strconv"
	"strings"

	"enlight/src/internal/core"

	"github.com/valyala/fastjson"
)

// Turns raw lines into entries
type lineParser struct {
	defaultLevel string
	guessLevel   bool
	parsers      fastjson.ParserPool
}

// Returns the level, message and meta for one line. JSON object lines
// carry their own level and message; every other line is plain text.
func (p *lineParser) parse(line string) (level, msg string, meta core.Value, isJSON bool) {
	if strings.HasPrefix(strings.TrimSpace(line), "{") {
		if level, msg, meta, ok := p.parseJSON(line); ok {
			return level, msg, meta, true
		}
	}

	level = p.defaultLevel
	if p.guessLevel {
		if guessed := extractLogLevel(line); guessed != "" {
			level = guessed
		}
	}
	return level, line, core.Map(), false
}

func (p *lineParser) parseJSON(line string) (level, msg string, meta core.Value, ok bool) {
	parser := p.parsers.Get()
	defer p.parsers.Put(parser)

	v, err := parser.Parse(line)
	if err != nil || v.Type() != fastjson.TypeObject {
		return "", "", core.Value{}, false
	}
	obj, _ := v.Object()

	level = p.defaultLevel
	var fields core.Fields
	obj.Visit(func(key []byte, val *fastjson.Value) {
		k := string(key)
		switch {
		case k == "level" && val.Type() == fastjson.TypeString && core.IsValidLevel(string(val.GetStringBytes())):
			level = strings.ToLower(string(val.GetStringBytes()))
		case k == "message" && val.Type() == fastjson.TypeString:
			msg = string(val.GetStringBytes())
		case k == "msg" && val.Type() == fastjson.TypeString && msg == "":
			msg = string(val.GetStringBytes())
		default:
			fields = append(fields, core.Field{Key: k, Value: jsonValue(val, 0)})
		}
	})

	return level, msg, core.Map(fields...), true
}

// Converts a parsed value, copying out of the parser's buffers
func jsonValue(v *fastjson.Value, depth int) core.Value {
	if depth > core.MaxFlattenDepth {
		return core.Scalar(core.MaxDepthMarker)
	}

	switch v.Type() {
	case fastjson.TypeNull:
		return core.Scalar(nil)
	case fastjson.TypeTrue:
		return core.Scalar(true)
	case fastjson.TypeFalse:
		return core.Scalar(false)
	case fastjson.TypeString:
		return core.Scalar(string(v.GetStringBytes()))
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return core.Scalar(n)
		}
		f, _ := v.Float64()
		return core.Scalar(f)
	case fastjson.TypeArray:
		items, _ := v.Array()
		fields := make(core.Fields, 0, len(items))
		for i, item := range items {
			fields = append(fields, core.Field{Key: strconv.Itoa(i), Value: jsonValue(item, depth+1)})
		}
		return core.Map(fields...)
	case fastjson.TypeObject:
		obj, _ := v.Object()
		var fields core.Fields
		obj.Visit(func(key []byte, val *fastjson.Value) {
			fields = append(fields, core.Field{Key: string(key), Value: jsonValue(val, depth+1)})
		})
		return core.Map(fields...)
	default:
		return core.Scalar(v.String())
	}
}

// Guesses a level from conventional markers in plain text
func extractLogLevel(line string) string {
	patterns := []struct {
		patterns []string
		level    string
	}{
		{[]string{"[ERROR]", "ERROR:", " ERROR ", "ERR:", "[ERR]", "FATAL:", "[FATAL]"}, core.LevelError},
		{[]string{"[WARN]", "WARN:", " WARN ", "WARNING:", "[WARNING]"}, core.LevelWarn},
		{[]string{"[INFO]", "INFO:", " INFO ", "[INF]", "INF:"}, core.LevelInfo},
		{[]string{"[DEBUG]", "DEBUG:", " DEBUG ", "[DBG]", "DBG:"}, core.LevelDebug},
		{[]string{"[TRACE]", "TRACE:", " TRACE "}, core.LevelSilly},
	}

	upperLine := strings.ToUpper(line)
	for _, group := range patterns {
		for _, pattern := range group.patterns {
			if strings.Contains(upperLine, pattern) {
				return group.level
			}
		}
	}

	return ""
}
