package soap

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/enlamano/bcugateway/internal/domain/errs"
	"github.com/enlamano/bcugateway/internal/logger"
)

// ChannelMode is the tagged channel-configuration variant for the outbound
// TLS channel to the BCU. Exactly two members exist:
//
//   - MutualTLS: client certificate plus a custom trust anchor; the peer is
//     validated against that anchor with full hostname verification.
//   - Insecure: accepts any server certificate, development only. It is never
//     selected silently; callers must opt in explicitly and a loud warning is
//     logged when the channel is built.
type ChannelMode interface {
	isChannelMode()
}

// MutualTLS configures mutual TLS with the upstream provider.
//
// Fields:
//   - CertFile: PEM-encoded client certificate presented to the BCU.
//   - KeyFile: PEM-encoded private key for the client certificate.
//   - KeyPassword: passphrase for a legacy encrypted PEM key ("" if none).
//   - CAFile: PEM bundle of certificates trusted for the BCU host.
type MutualTLS struct {
	CertFile    string
	KeyFile     string
	KeyPassword string
	CAFile      string
}

func (MutualTLS) isChannelMode() {}

// Insecure disables peer verification on the outbound channel.
// Development only.
type Insecure struct{}

func (Insecure) isChannelMode() {}

// buildTLSConfig turns a channel mode into a crypto/tls configuration.
// Any failure to load or decrypt the configured material is a
// ChannelConfigurationError; callers treat it as fatal for the client.
func buildTLSConfig(mode ChannelMode) (*tls.Config, error) {
	switch m := mode.(type) {
	case MutualTLS:
		return buildMutualTLS(m)
	case Insecure:
		logger.L().Warn().
			Msg("canal BCU en modo inseguro: se acepta cualquier certificado del servidor - SOLO PARA DESARROLLO")
		// #nosec G402 - explicit development-only opt-in, never the default
		return &tls.Config{InsecureSkipVerify: true, MinVersion: tls.VersionTLS12}, nil
	default:
		return nil, errs.New(errs.KindChannelConfiguration,
			"Modo de canal TLS no reconocido. Configure mTLS o el modo inseguro explícitamente.")
	}
}

func buildMutualTLS(m MutualTLS) (*tls.Config, error) {
	cert, err := loadClientIdentity(m)
	if err != nil {
		return nil, err
	}

	caPEM, err := os.ReadFile(m.CAFile)
	if err != nil {
		return nil, errs.Wrap(errs.KindChannelConfiguration,
			"No se pudo leer el truststore del BCU: "+m.CAFile, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, errs.New(errs.KindChannelConfiguration,
			"El truststore del BCU no contiene certificados PEM válidos: "+m.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// loadClientIdentity loads the client certificate and key, decrypting a
// legacy encrypted PEM key with the configured passphrase when needed.
func loadClientIdentity(m MutualTLS) (tls.Certificate, error) {
	certPEM, err := os.ReadFile(m.CertFile)
	if err != nil {
		return tls.Certificate{}, errs.Wrap(errs.KindChannelConfiguration,
			"No se pudo leer el certificado cliente: "+m.CertFile, err)
	}
	keyPEM, err := os.ReadFile(m.KeyFile)
	if err != nil {
		return tls.Certificate{}, errs.Wrap(errs.KindChannelConfiguration,
			"No se pudo leer la clave privada del cliente: "+m.KeyFile, err)
	}

	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return tls.Certificate{}, errs.New(errs.KindChannelConfiguration,
			"La clave privada del cliente no es un PEM válido: "+m.KeyFile)
	}
	//nolint:staticcheck // legacy encrypted PEM keys are part of the deployment contract
	if x509.IsEncryptedPEMBlock(block) {
		//nolint:staticcheck
		der, err := x509.DecryptPEMBlock(block, []byte(m.KeyPassword))
		if err != nil {
			return tls.Certificate{}, errs.Wrap(errs.KindChannelConfiguration,
				"No se pudo descifrar la clave privada del cliente con la contraseña configurada.", err)
		}
		keyPEM = pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der})
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, errs.Wrap(errs.KindChannelConfiguration,
			"El certificado cliente y su clave privada no son utilizables.", err)
	}
	return cert, nil
}
