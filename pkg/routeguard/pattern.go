package routeguard

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// pattern is a compiled route path. A ":name" token becomes a capture
// matching exactly one path segment; literal segments are regex-escaped.
type pattern struct {
	re     *regexp.Regexp
	params []string
}

// compilePattern turns a rule path into an anchored regexp. Parameters
// capture a single segment only: "[^/]+" cannot cross a slash, so
// "/worlds/:id" matches "/worlds/42" but never "/worlds/42/43".
func compilePattern(path string) (*pattern, error) {
	if path == "" || !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path must start with '/', got %q", path)
	}

	var sb strings.Builder
	var params []string
	sb.WriteString("^")

	for _, segment := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		sb.WriteString("/")
		if name, ok := strings.CutPrefix(segment, ":"); ok {
			if name == "" {
				return nil, errors.New("path parameter must have a name")
			}
			params = append(params, name)
			sb.WriteString("([^/]+)")
			continue
		}
		sb.WriteString(regexp.QuoteMeta(segment))
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, err
	}

	return &pattern{re: re, params: params}, nil
}

// match tries the compiled pattern against a request path and returns the
// captured parameters by name.
func (p *pattern) match(path string) (map[string]string, bool) {
	groups := p.re.FindStringSubmatch(path)
	if groups == nil {
		return nil, false
	}

	params := make(map[string]string, len(p.params))
	for i, name := range p.params {
		params[name] = groups[i+1]
	}
	return params, true
}

// stripAPIPrefix removes a conventional API prefix segment so rules are
// portable whether or not they were authored with it. The prefix is only
// stripped as a whole leading segment: "/apiv2/x" is left alone.
func stripAPIPrefix(path, prefix string) string {
	if prefix == "" {
		return path
	}
	if path == prefix {
		return "/"
	}
	if strings.HasPrefix(path, prefix+"/") {
		return strings.TrimPrefix(path, prefix)
	}
	return path
}
