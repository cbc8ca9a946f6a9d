package transport

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"net"

	"github.com/kprusa/olsrmesh/olsr"
)

// UDPTransport sends and receives control messages as gob-encoded UDP
// datagrams on a shared multicast group, the wire-level stand-in for the
// broadcast medium the in-process Medium models for tests.
type UDPTransport struct {
	conn  *net.UDPConn
	group *net.UDPAddr
}

// NewUDPTransport joins the multicast group addr (e.g. "224.0.0.251:6698")
// on iface (an empty name selects the default interface) and returns a transport
// ready to Send and Recv.
func NewUDPTransport(addr, iface string) (*UDPTransport, error) {
	group, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve multicast group: %w", err)
	}

	var ifi *net.Interface
	if iface != "" {
		ifi, err = net.InterfaceByName(iface)
		if err != nil {
			return nil, fmt.Errorf("resolve interface %q: %w", iface, err)
		}
	}

	conn, err := net.ListenMulticastUDP("udp4", ifi, group)
	if err != nil {
		return nil, fmt.Errorf("listen multicast: %w", err)
	}

	return &UDPTransport{conn: conn, group: group}, nil
}

// Send gob-encodes out and writes it to the multicast group.
func (u *UDPTransport) Send(out olsr.Outbound) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("encode outbound: %w", err)
	}
	_, err := u.conn.WriteToUDP(buf.Bytes(), u.group)
	return err
}

// Recv blocks until a datagram arrives, decoding it into an Outbound.
// Datagrams this process itself sent are not filtered here; the caller
// should drop any whose Header.Originator equals its own node id.
func (u *UDPTransport) Recv() (olsr.Outbound, error) {
	buf := make([]byte, 64*1024)
	n, _, err := u.conn.ReadFromUDP(buf)
	if err != nil {
		return olsr.Outbound{}, err
	}
	var out olsr.Outbound
	if err := gob.NewDecoder(bytes.NewReader(buf[:n])).Decode(&out); err != nil {
		return olsr.Outbound{}, fmt.Errorf("decode outbound: %w", err)
	}
	return out, nil
}

// Close releases the underlying socket.
func (u *UDPTransport) Close() error {
	return u.conn.Close()
}

var _ olsr.Transport = (*UDPTransport)(nil)
