package router

import (
	"fmt"
	"strings"
)

type nodeTyp uint8

const (
	ntStatic   nodeTyp = iota // /home
	ntParam                   // /:user
	ntCatchAll                // /*path
)

// endpoint is the value bound to a terminal node.
type endpoint[V any] struct {
	value   V
	pattern string
}

// node is one segment of a routing trie. V is the bound value: a handler for
// method trees, a set of callbacks for the WebSocket tree.
type node[V any] struct {
	// static children keyed by their literal segment
	children map[string]*node[V]

	// at most one named parameter child and one catch-all child
	param    *node[V]
	wildcard *node[V]

	// bound value on terminal nodes
	endpoint *endpoint[V]

	// literal text for static nodes, capture name otherwise
	segment string

	typ nodeTyp
}

// routeParam is a captured key/value pair collected during lookup.
type routeParam struct {
	key   string
	value string
}

// insertRoute binds value to pattern. Re-registering an identical pattern
// replaces the previous value.
func (n *node[V]) insertRoute(pattern string, value V) error {
	segs, err := parsePattern(pattern)
	if err != nil {
		return err
	}

	cur := n
	for _, s := range segs {
		next, err := cur.addChild(s.typ, s.name)
		if err != nil {
			return fmt.Errorf("%w in '%s'", err, pattern)
		}
		cur = next
	}

	cur.endpoint = &endpoint[V]{value: value, pattern: pattern}
	return nil
}

// addChild returns the child for the segment, creating it when missing.
func (n *node[V]) addChild(typ nodeTyp, seg string) (*node[V], error) {
	switch typ {
	case ntParam:
		if n.param == nil {
			n.param = &node[V]{typ: ntParam, segment: seg}
		} else if n.param.segment != seg {
			return nil, fmt.Errorf("%w: ':%s' conflicts with ':%s'", ErrParamConflict, seg, n.param.segment)
		}
		return n.param, nil

	case ntCatchAll:
		if n.wildcard == nil {
			n.wildcard = &node[V]{typ: ntCatchAll, segment: seg}
		} else if n.wildcard.segment != seg {
			return nil, fmt.Errorf("%w: '*%s' conflicts with '*%s'", ErrParamConflict, seg, n.wildcard.segment)
		}
		return n.wildcard, nil

	default:
		if child, ok := n.children[seg]; ok {
			return child, nil
		}
		if n.children == nil {
			n.children = make(map[string]*node[V])
		}
		child := &node[V]{typ: ntStatic, segment: seg}
		n.children[seg] = child
		return child, nil
	}
}

// findRoute looks up path and returns the bound endpoint with its captured
// parameters, or nil when nothing matches.
func (n *node[V]) findRoute(path string) (*endpoint[V], map[string]string) {
	var params []routeParam
	ep := n.match(splitPath(path), &params)
	if ep == nil || len(params) == 0 {
		return ep, nil
	}

	m := make(map[string]string, len(params))
	for _, p := range params {
		m[p.key] = p.value
	}
	return ep, m
}

// match walks the remaining segments. At every level a static child is tried
// first, then the parameter child, then the catch-all. A branch that dead-ends
// gives way to the next candidate on the same level.
func (n *node[V]) match(segs []string, params *[]routeParam) *endpoint[V] {
	if len(segs) == 0 {
		return n.endpoint
	}

	seg := segs[0]

	if child, ok := n.children[seg]; ok {
		if ep := child.match(segs[1:], params); ep != nil {
			return ep
		}
	}

	// empty segments never bind to a parameter
	if n.param != nil && seg != "" {
		prevlen := len(*params)
		*params = append(*params, routeParam{key: n.param.segment, value: seg})
		if ep := n.param.match(segs[1:], params); ep != nil {
			return ep
		}
		*params = (*params)[:prevlen]
	}

	if n.wildcard != nil && n.wildcard.endpoint != nil {
		*params = append(*params, routeParam{key: n.wildcard.segment, value: strings.Join(segs, "/")})
		return n.wildcard.endpoint
	}

	return nil
}

// walk visits every bound endpoint.
func (n *node[V]) walk(fn func(ep *endpoint[V])) {
	if n.endpoint != nil {
		fn(n.endpoint)
	}
	for _, child := range n.children {
		child.walk(fn)
	}
	if n.param != nil {
		n.param.walk(fn)
	}
	if n.wildcard != nil {
		n.wildcard.walk(fn)
	}
}

type patternSegment struct {
	typ  nodeTyp
	name string
}

// parsePattern validates a route pattern and splits it into typed segments.
func parsePattern(pattern string) ([]patternSegment, error) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return nil, fmt.Errorf("%w: '%s' must begin with '/'", ErrInvalidPattern, pattern)
	}

	parts := splitPath(pattern)
	segs := make([]patternSegment, 0, len(parts))
	seen := make(map[string]struct{})

	for i, part := range parts {
		s := patternSegment{typ: ntStatic, name: part}
		if part != "" {
			switch part[0] {
			case ':':
				s = patternSegment{typ: ntParam, name: part[1:]}
			case '*':
				s = patternSegment{typ: ntCatchAll, name: part[1:]}
				if i != len(parts)-1 {
					return nil, fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern)
				}
			}
		}

		if s.typ != ntStatic {
			if s.name == "" {
				return nil, fmt.Errorf("%w: '%s' has an unnamed segment", ErrInvalidPattern, pattern)
			}
			if _, dup := seen[s.name]; dup {
				return nil, fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, pattern, s.name)
			}
			seen[s.name] = struct{}{}
		}

		segs = append(segs, s)
	}

	return segs, nil
}

// splitPath returns the '/'-separated segments after the leading slash.
// The root path yields no segments; a trailing slash yields a final empty one.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
