package libvirt

import (
	"fmt"
	"log/slog"
	"sync"

	"libvirt.org/go/libvirt"
)

// ConnectionManager owns a single hypervisor connection and reconnects it
// when libvirt reports it dead.
type ConnectionManager struct {
	conn   *libvirt.Connect
	mu     sync.Mutex
	uri    string
	logger *slog.Logger
}

func NewConnectionManager(uri string, logger *slog.Logger) (*ConnectionManager, error) {
	conn, err := libvirt.NewConnect(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to libvirt: %w", err)
	}

	logger.Info("libvirt connection established", slog.String("uri", uri))

	return &ConnectionManager{
		conn:   conn,
		uri:    uri,
		logger: logger.With(slog.String("component", "libvirt")),
	}, nil
}

// GetHypervisor locks the connection and returns it with its unlock func.
func (cm *ConnectionManager) GetHypervisor() (*libvirt.Connect, func(), error) {
	cm.mu.Lock()

	alive, err := cm.conn.IsAlive()
	if err != nil || !alive {
		cm.logger.Warn("connection unhealthy, attempting reconnect")
		if err := cm.reconnect(); err != nil {
			cm.mu.Unlock()
			return nil, nil, err
		}
	}

	unlock := func() { cm.mu.Unlock() }
	return cm.conn, unlock, nil
}

// DefineDomain defines domainXML persistently and starts it when start is
// set. It returns the UUID libvirt assigned to the domain.
func (cm *ConnectionManager) DefineDomain(domainXML string, start bool) (string, error) {
	conn, unlock, err := cm.GetHypervisor()
	if err != nil {
		return "", err
	}
	defer unlock()

	domain, err := conn.DomainDefineXML(domainXML)
	if err != nil {
		return "", fmt.Errorf("could not define domain from Libvirt XML: %w", err)
	}
	defer domain.Free()

	name, _ := domain.GetName()
	id, err := domain.GetUUIDString()
	if err != nil {
		return "", fmt.Errorf("could not get domain UUID: %w", err)
	}
	cm.logger.Info("defined domain", slog.String("domain", name), slog.String("uuid", id))

	if start {
		if err := domain.Create(); err != nil {
			return id, fmt.Errorf("could not start domain: %w", err)
		}
		cm.logger.Info("started domain", slog.String("domain", name))
	}

	return id, nil
}

// Info describes a hypervisor connection.
type Info struct {
	URI        string
	Hostname   string
	LibVersion string
	Alive      bool
}

// Info reports on the connection without reconnecting it.
func (cm *ConnectionManager) Info() (Info, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	info := Info{URI: cm.uri}

	alive, err := cm.conn.IsAlive()
	if err != nil {
		return info, fmt.Errorf("could not check connection: %w", err)
	}
	info.Alive = alive
	if !alive {
		return info, nil
	}

	if info.Hostname, err = cm.conn.GetHostname(); err != nil {
		return info, fmt.Errorf("could not get hypervisor hostname: %w", err)
	}

	version, err := cm.conn.GetLibVersion()
	if err != nil {
		return info, fmt.Errorf("could not get libvirt version: %w", err)
	}
	info.LibVersion = fmt.Sprintf("%d.%d.%d", version/1000000, version/1000%1000, version%1000)

	return info, nil
}

func (cm *ConnectionManager) reconnect() error {
	if cm.conn != nil {
		cm.conn.Close()
	}

	conn, err := libvirt.NewConnect(cm.uri)
	if err != nil {
		return fmt.Errorf("reconnection failed: %w", err)
	}

	cm.conn = conn
	cm.logger.Info("libvirt reconnected", slog.String("uri", cm.uri))
	return nil
}

// GetURI returns the libvirt URI being used
func (cm *ConnectionManager) GetURI() string {
	return cm.uri
}

func (cm *ConnectionManager) Close() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.conn != nil {
		cm.logger.Info("closing libvirt connection")
		_, err := cm.conn.Close()
		return err
	}
	return nil
}
