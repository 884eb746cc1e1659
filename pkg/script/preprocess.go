package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
)

// kwPrefix marks keyword arguments after preprocessing. Scripts use
// Lisp :keywords, zygomys has no native keyword type, so the
// preprocessor rewrites them into tagged string literals the builtins
// recognize.
const kwPrefix = "__kw_"

// preprocess rewrites geometry-script syntax into the subset zygomys
// accepts:
//
//   - :keyword     -> "__kw_keyword" (tagged string literal)
//   - fiber-shroud -> fiber_shroud   (zygomys reads - as subtraction)
//   - ; comment    -> // comment
//
// String literals pass through untouched and := survives as the
// assignment operator.
func preprocess(src string) string {
	out := make([]byte, 0, len(src)+len(src)/4)
	b := []byte(src)
	for i := 0; i < len(b); {
		switch {
		case b[i] == '"' || b[i] == '`':
			quote := b[i]
			out = append(out, quote)
			i++
			for i < len(b) && b[i] != quote {
				if quote == '"' && b[i] == '\\' && i+1 < len(b) {
					out = append(out, b[i], b[i+1])
					i += 2
					continue
				}
				out = append(out, b[i])
				i++
			}
			if i < len(b) {
				out = append(out, quote)
				i++
			}
		case b[i] == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2
		case b[i] == ':' && i+1 < len(b) && isAlpha(b[i+1]):
			j := i + 1
			for j < len(b) && isKeywordChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j
		case b[i] == '-' && i > 0 && i+1 < len(b) && isWordChar(b[i-1]) && isAlpha(b[i+1]):
			// Hyphen between identifier characters, not a minus.
			out = append(out, '_')
			i++
		default:
			out = append(out, b[i])
			i++
		}
	}
	return string(out)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKeywordChar(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isWordChar(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '_'
}

// args holds a parsed mixed positional and keyword argument list.
type args struct {
	kw  map[string]zygo.Sexp
	pos []zygo.Sexp
}

func parseArgs(list []zygo.Sexp) args {
	out := args{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(list); {
		name, ok := keywordName(list[i])
		if !ok {
			out.pos = append(out.pos, list[i])
			i++
			continue
		}
		if i+1 < len(list) {
			out.kw[name] = list[i+1]
			i += 2
		} else {
			// Bare trailing keyword, used as a flag.
			out.kw[name] = zygo.SexpNull
			i++
		}
	}
	return out
}

// keywordName reports whether s is a preprocessed keyword and strips
// the tag.
func keywordName(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

func toFloat(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %s", s.SexpString(nil))
}

// toString accepts both plain strings and keyword values, so
// enum-style options read naturally as :mode :detailed.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return strings.TrimPrefix(str.S, kwPrefix), nil
	}
	return "", fmt.Errorf("expected string, got %s", s.SexpString(nil))
}

// toBool accepts true and false literals. A bare trailing keyword
// parses as null and reads as enabled.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected bool, got %s", s.SexpString(nil))
}
