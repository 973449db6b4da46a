// Package sshtunnel provides an authenticated local port forward to a
// remote endpoint reachable through an SSH host. A Tunnel is a scoped
// resource: Open it, defer Close, and the underlying transport is torn
// down on every exit path.
package sshtunnel

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
)

const dialTimeout = 10 * time.Second

// Spec describes one tunnel: where to listen locally, where to forward
// remotely, and which SSH endpoint carries the traffic. The key path is
// explicit configuration; nothing here reads ambient environment state.
type Spec struct {
	RemoteHost string
	RemotePort int
	LocalHost  string
	LocalPort  int
	SSHUser    string
	SSHHost    string
	SSHPort    int
	KeyPath    string
}

// LocalAddr returns the local listen address.
func (s Spec) LocalAddr() string {
	return net.JoinHostPort(s.LocalHost, fmt.Sprintf("%d", s.LocalPort))
}

// RemoteAddr returns the forward target address as seen from the SSH host.
func (s Spec) RemoteAddr() string {
	return net.JoinHostPort(s.RemoteHost, fmt.Sprintf("%d", s.RemotePort))
}

// SSHAddr returns the SSH endpoint address.
func (s Spec) SSHAddr() string {
	return net.JoinHostPort(s.SSHHost, fmt.Sprintf("%d", s.SSHPort))
}

// ManualCommand renders the ssh command line an operator can run to
// establish the same forward by hand.
func (s Spec) ManualCommand() string {
	return fmt.Sprintf("ssh -N -L %s:%d:%s:%d -i %s -p %d %s@%s",
		s.LocalHost, s.LocalPort, s.RemoteHost, s.RemotePort,
		s.KeyPath, s.SSHPort, s.SSHUser, s.SSHHost)
}

// Error reports a tunnel establishment failure. It carries the spec so
// callers can surface the manual remediation command.
type Error struct {
	Spec Spec
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ssh tunnel to %s via %s: %v", e.Spec.RemoteAddr(), e.Spec.SSHAddr(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ManualCommand returns the equivalent ssh forwarding command line.
func (e *Error) ManualCommand() string { return e.Spec.ManualCommand() }

// Tunnel is an open local-to-remote port forward.
type Tunnel struct {
	spec      Spec
	client    *ssh.Client
	listener  net.Listener
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Open establishes the tunnel described by spec. On failure any partial
// transport state is released before the error is returned.
func Open(ctx context.Context, spec Spec) (*Tunnel, error) {
	key, err := os.ReadFile(spec.KeyPath)
	if err != nil {
		return nil, &Error{Spec: spec, Err: fmt.Errorf("read private key: %w", err)}
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, &Error{Spec: spec, Err: fmt.Errorf("parse private key: %w", err)}
	}

	config := &ssh.ClientConfig{
		User:            spec.SSHUser,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", spec.SSHAddr())
	if err != nil {
		return nil, &Error{Spec: spec, Err: fmt.Errorf("dial %s: %w", spec.SSHAddr(), err)}
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, spec.SSHAddr(), config)
	if err != nil {
		_ = conn.Close()
		return nil, &Error{Spec: spec, Err: fmt.Errorf("ssh handshake: %w", err)}
	}
	client := ssh.NewClient(sshConn, chans, reqs)

	listener, err := net.Listen("tcp", spec.LocalAddr())
	if err != nil {
		_ = client.Close()
		return nil, &Error{Spec: spec, Err: fmt.Errorf("listen %s: %w", spec.LocalAddr(), err)}
	}

	t := &Tunnel{spec: spec, client: client, listener: listener}
	t.wg.Add(1)
	go t.acceptLoop()
	return t, nil
}

// LocalAddr returns the address local clients should connect to.
func (t *Tunnel) LocalAddr() string { return t.listener.Addr().String() }

// Close tears down the listener and the SSH transport. It is idempotent
// and safe to defer alongside an explicit call.
func (t *Tunnel) Close() error {
	var err error
	t.closeOnce.Do(func() {
		lerr := t.listener.Close()
		cerr := t.client.Close()
		t.wg.Wait()
		if lerr != nil {
			err = lerr
		} else {
			err = cerr
		}
	})
	return err
}

func (t *Tunnel) acceptLoop() {
	defer t.wg.Done()
	for {
		local, err := t.listener.Accept()
		if err != nil {
			// Listener closed; the tunnel is shutting down.
			return
		}
		go t.forward(local)
	}
}

func (t *Tunnel) forward(local net.Conn) {
	defer local.Close()
	remote, err := t.client.Dial("tcp", t.spec.RemoteAddr())
	if err != nil {
		return
	}
	defer remote.Close()

	done := make(chan struct{}, 2)
	go func() {
		_, _ = io.Copy(remote, local)
		done <- struct{}{}
	}()
	go func() {
		_, _ = io.Copy(local, remote)
		done <- struct{}{}
	}()
	<-done
}
