package probe

import (
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/registry"
)

// Deep performs a full SSH handshake against the target instead of a bare
// TCP dial. It authenticates with the target's key file when one is
// configured, falling back to the SSH agent. Used by `ghost probe --deep`
// to verify that authentication actually works, not just that the port
// answers.
func Deep(t registry.Target, timeout time.Duration) (time.Duration, error) {
	cfg, err := deepClientConfig(t, timeout)
	if err != nil {
		return 0, err
	}

	start := time.Now()

	conn, err := net.DialTimeout("tcp", t.Addr(), timeout)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrProbe,
			fmt.Sprintf("Can't reach '%s' at %s", t.Name, t.Addr()),
			"Check the host is up and the port is correct")
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, t.Addr(), cfg)
	if err != nil {
		conn.Close()
		return 0, errors.WrapWithCode(err, errors.ErrProbe,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", t.Name),
			"Check your keys are loaded: ssh-add -l")
	}

	latency := time.Since(start)
	ssh.NewClient(sshConn, chans, reqs).Close()
	return latency, nil
}

// deepClientConfig builds the client config for a handshake probe.
// Host keys are not verified here: the probe answers "can I authenticate",
// and the interactive ssh binary still does its own host key checking on
// real connections.
func deepClientConfig(t registry.Target, timeout time.Duration) (*ssh.ClientConfig, error) {
	var methods []ssh.AuthMethod

	if t.Auth.Type == registry.AuthKey && t.Auth.KeyPath != "" {
		keyPath := config.ExpandTilde(t.Auth.KeyPath)
		keyBytes, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrProbe,
				fmt.Sprintf("Couldn't read key file for '%s'", t.Name),
				"Check the key path in the target's configuration")
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrProbe,
				fmt.Sprintf("Couldn't parse key file %s", keyPath),
				"Encrypted keys aren't supported for deep probes; load the key into your agent instead")
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if agentAuth := sshAgentAuth(); agentAuth != nil {
		methods = append(methods, agentAuth)
	}

	if len(methods) == 0 {
		return nil, errors.New(errors.ErrProbe,
			"No usable SSH auth for deep probe",
			"Start an ssh-agent and add your keys (ssh-add), or configure a key file for the target")
	}

	user := t.User
	if user == "" {
		user = os.Getenv("USER")
	}

	return &ssh.ClientConfig{
		User:            user,
		Auth:            methods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}, nil
}

// sshAgentAuth returns an auth method backed by the running SSH agent,
// or nil when no agent is reachable or it has no keys loaded.
func sshAgentAuth() ssh.AuthMethod {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil
	}

	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil
	}

	client := agent.NewClient(conn)

	// An empty agent causes auth failures when placed before other methods.
	signers, err := client.Signers()
	if err != nil || len(signers) == 0 {
		conn.Close()
		return nil
	}

	return ssh.PublicKeysCallback(client.Signers)
}
