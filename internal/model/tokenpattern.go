package model

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// wordRunPattern matches token patterns that select whole word runs of a
// minimum length, such as \b\w\w+\b or \b\w{3,}\b.
var wordRunPattern = regexp.MustCompile(`^\\b((?:\\w)*)\\w(?:(\+)|\{(\d+),\})\\b$`)

const (
	unicodeWord  = `\p{L}\p{N}_`
	unicodeSpace = `\s\p{Z}\x{1c}-\x{1f}\x{85}`
)

// compileTokenPattern turns an exported token_pattern into a tokenizer. Word-run
// patterns are served by wordRuns with the returned minimum length and a nil
// regexp. Any other pattern is compiled with \w, \d and \s widened to Unicode;
// such patterns may not use \b or \B since RE2 only knows ASCII word boundaries.
func compileTokenPattern(p string) (int, *regexp.Regexp, error) {
	p = strings.TrimPrefix(p, "(?u)")
	if m := wordRunPattern.FindStringSubmatch(p); m != nil {
		minLen := len(m[1])/2 + 1
		if m[2] == "" {
			n, err := strconv.Atoi(m[3])
			if err != nil {
				return 0, nil, err
			}
			minLen = len(m[1])/2 + n
		}
		if minLen < 1 {
			return 0, nil, errors.New("word run pattern matches empty tokens")
		}
		return minLen, nil, nil
	}

	translated, err := unicodeClasses(p)
	if err != nil {
		return 0, nil, err
	}
	re, err := regexp.Compile(translated)
	if err != nil {
		return 0, nil, err
	}
	if re.NumSubexp() > 1 {
		return 0, nil, errors.New("more than one capturing group")
	}
	return 0, re, nil
}

// unicodeClasses rewrites the Perl class escapes so they match what they match
// in a Unicode-mode Python regex.
func unicodeClasses(p string) (string, error) {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '\\' && i+1 < len(p) {
			i++
			switch n := p[i]; n {
			case 'w':
				b.WriteString(wrapClass(unicodeWord, inClass))
			case 'd':
				b.WriteString(`\p{Nd}`)
			case 'D':
				b.WriteString(`\P{Nd}`)
			case 's':
				b.WriteString(wrapClass(unicodeSpace, inClass))
			case 'W', 'S':
				if inClass {
					return "", errors.New(`\` + string(n) + ` inside a character class is not supported`)
				}
				set := unicodeWord
				if n == 'S' {
					set = unicodeSpace
				}
				b.WriteString("[^" + set + "]")
			case 'b', 'B':
				return "", errors.New(`\` + string(n) + ` is only supported in whole-word patterns like \b\w\w+\b`)
			default:
				b.WriteByte('\\')
				b.WriteByte(n)
			}
			continue
		}
		switch {
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
			if i+1 < len(p) && p[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(p) && p[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
			continue
		case c == '[' && inClass && i+1 < len(p) && p[i+1] == ':':
			end := strings.Index(p[i:], ":]")
			if end < 0 {
				return "", errors.New("unterminated character class name")
			}
			b.WriteString(p[i : i+end+2])
			i += end + 1
			continue
		case c == ']' && inClass:
			inClass = false
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func wrapClass(set string, inClass bool) string {
	if inClass {
		return set
	}
	return "[" + set + "]"
}
