// Package sshconn adapts an SSH session's combined stdin/stdout pipes
// into the io.ReadWriter that internal/stream.Stream needs, so the
// same packet stream runs unchanged over a remote shell channel.
package sshconn

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Config describes how to reach the remote xenstore endpoint.
type Config struct {
	Host                        string
	Port                        string
	User                        string
	KeyPath                     string
	Passphrase                  []byte
	KnownHostsPath              string
	InsecureSkipHostKeyChecking bool
	Timeout                     time.Duration

	// RemoteCommand is run on the remote host; its stdin/stdout become
	// the packet stream's transport. It is expected to speak the wire
	// protocol directly (e.g. a socat bridge to the remote xenstored
	// socket).
	RemoteCommand string
}

// Conn is an io.ReadWriter backed by a live SSH session's stdio pipes.
// It owns the underlying ssh.Client and ssh.Session and must be
// Closed by the caller.
type Conn struct {
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	stdout  io.Reader
}

// Dial opens an SSH connection per cfg, starts cfg.RemoteCommand, and
// returns a Conn wrapping its stdio pipes.
func Dial(cfg Config) (*Conn, error) {
	address, err := resolveAddress(cfg.Host, cfg.Port)
	if err != nil {
		return nil, err
	}

	clientConfig, err := buildClientConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := dialWithTimeout(address, clientConfig, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("sshconn: dial %s: %w", address, err)
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("sshconn: open session: %w", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("sshconn: stdin pipe: %w", err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("sshconn: stdout pipe: %w", err)
	}

	if err := session.Start(cfg.RemoteCommand); err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("sshconn: start %q: %w", cfg.RemoteCommand, err)
	}

	return &Conn{client: client, session: session, stdin: stdin, stdout: stdout}, nil
}

// Read implements io.Reader over the session's stdout pipe.
func (c *Conn) Read(p []byte) (int, error) {
	return c.stdout.Read(p)
}

// Write implements io.Writer over the session's stdin pipe.
func (c *Conn) Write(p []byte) (int, error) {
	return c.stdin.Write(p)
}

// Close tears down the session and the underlying client.
func (c *Conn) Close() error {
	sessionErr := c.session.Close()
	clientErr := c.client.Close()
	if sessionErr != nil {
		return sessionErr
	}
	return clientErr
}

func dialWithTimeout(address string, config *ssh.ClientConfig, timeout time.Duration) (*ssh.Client, error) {
	if timeout <= 0 {
		return ssh.Dial("tcp", address, config)
	}

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, err
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return ssh.NewClient(clientConn, chans, reqs), nil
}

func resolveAddress(host, port string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("sshconn: host is required")
	}
	if port != "" {
		return net.JoinHostPort(host, port), nil
	}
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host, nil
	}
	return net.JoinHostPort(host, "22"), nil
}

func buildClientConfig(cfg Config) (*ssh.ClientConfig, error) {
	if cfg.User == "" {
		return nil, fmt.Errorf("sshconn: user is required")
	}

	signer, err := loadSigner(cfg.KeyPath, cfg.Passphrase)
	if err != nil {
		return nil, err
	}

	var hostKeyCallback ssh.HostKeyCallback
	if cfg.InsecureSkipHostKeyChecking {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	} else {
		callback, err := knownHostsCallback(cfg.KnownHostsPath)
		if err != nil {
			return nil, err
		}
		hostKeyCallback = callback
	}

	return &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         cfg.Timeout,
	}, nil
}

func loadSigner(keyPath string, passphrase []byte) (ssh.Signer, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("sshconn: key path is required")
	}
	privateKey, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}
	if len(passphrase) > 0 {
		return ssh.ParsePrivateKeyWithPassphrase(privateKey, passphrase)
	}
	return ssh.ParsePrivateKey(privateKey)
}

func knownHostsCallback(path string) (ssh.HostKeyCallback, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("sshconn: known hosts path not set and home dir unavailable")
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}
	return knownhosts.New(path)
}
