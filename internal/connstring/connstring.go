// Package connstring parses and serializes the connection-string grammar
// used by message-log sources:
//
//	proto://host[:port][,host:port...]/topic
//
// Parsing is lenient about input ordering; serialization always emits the
// canonical host-then-port sorted form so that repeated parse/serialize
// round-trips converge.
package connstring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jaidparmar/brooklin/types"
)

// Broker identifies one host:port pair in a connection string's broker
// list. Port is zero when the string omitted it.
type Broker struct {
	Host string
	Port int
}

// ConnectionString is the parsed form of a message-log connection string.
// Scheme is preserved verbatim from the input (e.g. "plain", "tls", or a
// transport-specific token like "kafka") so that serialization round-trips
// exactly; TLS is derived from it purely as a convenience for callers that
// care only about the plain/tls distinction.
type ConnectionString struct {
	Scheme  string
	TLS     bool
	Brokers []Broker
	Topic   string
}

const defaultPort = 0

var validSchemes = map[string]bool{"plain": true, "tls": true, "kafka": true}

// Parse validates and decomposes raw into a ConnectionString. Brokers are
// returned sorted into canonical order (host lexicographically, then port
// numerically).
func Parse(raw string) (ConnectionString, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return ConnectionString{}, invalid(raw, "missing proto:// separator")
	}

	if !validSchemes[scheme] {
		return ConnectionString{}, invalid(raw, fmt.Sprintf("unknown proto %q", scheme))
	}
	tls := scheme == "tls"

	hostPart, topic, ok := strings.Cut(rest, "/")
	if !ok {
		return ConnectionString{}, invalid(raw, "missing /topic")
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ConnectionString{}, invalid(raw, "topic is empty")
	}

	if hostPart == "" {
		return ConnectionString{}, invalid(raw, "host list is empty")
	}

	hostEntries := strings.Split(hostPart, ",")
	brokers := make([]Broker, 0, len(hostEntries))

	for _, entry := range hostEntries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return ConnectionString{}, invalid(raw, "empty host entry")
		}

		broker, err := parseBroker(entry)
		if err != nil {
			return ConnectionString{}, invalid(raw, err.Error())
		}

		brokers = append(brokers, broker)
	}

	sortBrokers(brokers)

	return ConnectionString{
		Scheme:  scheme,
		TLS:     tls,
		Brokers: brokers,
		Topic:   topic,
	}, nil
}

func parseBroker(entry string) (Broker, error) {
	host, portRaw, hasPort := strings.Cut(entry, ":")
	if host == "" {
		return Broker{}, fmt.Errorf("host missing in %q", entry)
	}

	if !hasPort {
		return Broker{Host: host, Port: defaultPort}, nil
	}

	port, err := strconv.Atoi(portRaw)
	if err != nil {
		return Broker{}, fmt.Errorf("non-numeric port in %q", entry)
	}

	if port < 1 || port > 65535 {
		return Broker{}, fmt.Errorf("port out of range in %q", entry)
	}

	return Broker{Host: host, Port: port}, nil
}

func sortBrokers(brokers []Broker) {
	sort.Slice(brokers, func(i, j int) bool {
		if brokers[i].Host != brokers[j].Host {
			return brokers[i].Host < brokers[j].Host
		}
		return brokers[i].Port < brokers[j].Port
	})
}

// Serialize renders cs into its canonical string form: proto://, brokers
// sorted host-then-port, /topic. Parse(Serialize(cs)) reproduces cs.
func Serialize(cs ConnectionString) string {
	brokers := make([]Broker, len(cs.Brokers))
	copy(brokers, cs.Brokers)
	sortBrokers(brokers)

	parts := make([]string, len(brokers))
	for i, b := range brokers {
		if b.Port == defaultPort {
			parts[i] = b.Host
			continue
		}
		parts[i] = fmt.Sprintf("%s:%d", b.Host, b.Port)
	}

	proto := cs.Scheme
	if proto == "" {
		proto = "plain"
		if cs.TLS {
			proto = "tls"
		}
	}

	return fmt.Sprintf("%s://%s/%s", proto, strings.Join(parts, ","), cs.Topic)
}

func invalid(raw, reason string) error {
	return fmt.Errorf("%w: %q: %s", types.ErrInvalidConnectionString, raw, reason)
}
