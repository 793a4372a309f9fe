package resource

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidURL = errors.New("invalid url")

// URL is a parsed absolute reference.
type URL struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

func defaultPort(scheme string) int {
	switch scheme {
	case "https":
		return 443
	case "http":
		return 80
	}
	return 0
}

// ParseURL splits scheme://host[:port]/path. A missing path becomes "/".
func ParseURL(raw string) (URL, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok || scheme == "" {
		return URL{}, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	scheme = strings.ToLower(scheme)

	hostport, path, found := strings.Cut(rest, "/")
	path = "/" + path
	if !found {
		path = "/"
	}

	u := URL{Scheme: scheme, Host: hostport, Port: defaultPort(scheme), Path: path}
	if host, port, ok := strings.Cut(hostport, ":"); ok {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return URL{}, fmt.Errorf("%w: bad port in %q", ErrInvalidURL, raw)
		}
		u.Host, u.Port = host, n
	}
	return u, nil
}

// String formats the URL, leaving out the port when it is the scheme's
// default.
func (u URL) String() string {
	host := u.Host
	if u.Port != 0 && u.Port != defaultPort(u.Scheme) {
		host += ":" + strconv.Itoa(u.Port)
	}
	return u.Scheme + "://" + host + u.Path
}

// Resolve parses ref relative to u.
func (u URL) Resolve(ref string) (URL, error) {
	return ParseURL(ResolveURL(ref, u.String()))
}

// cutLast splits s around its last "/". Without one, dir is empty.
func cutLast(s string) (dir, name string) {
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+1:]
}

// ResolveURL makes ref absolute against current. References with a scheme
// are returned unchanged; "/path" is taken relative to current's host;
// anything else is relative to current's directory, with each leading
// "../" climbing one directory but never above the host.
func ResolveURL(ref, current string) string {
	if strings.Contains(ref, "://") {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		scheme, hostpath, _ := strings.Cut(current, "://")
		host, _, _ := strings.Cut(hostpath, "/")
		return scheme + "://" + host + ref
	}

	directory, _ := cutLast(current)
	for strings.HasPrefix(ref, "../") {
		ref = ref[3:]
		if strings.Count(directory, "/") <= 2 {
			continue
		}
		directory, _ = cutLast(directory)
	}
	if directory == "" {
		return ref
	}
	return directory + "/" + ref
}
