package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/reusee/bfem/diagnostics"
	"github.com/reusee/bfem/logs"
	"github.com/reusee/bfem/nets"
)

var ErrEmptyPath = errors.New("empty source path")

// MaxSize bounds the bytes read from any source.
const MaxSize = 64 << 20

type Stdin io.Reader

func (Module) Stdin() Stdin {
	return os.Stdin
}

// Load reads program text from a file path, "-" for stdin, or an http(s) URL.
type Load func(ctx context.Context, path string) (diagnostics.Source, error)

func (Module) Load(
	client nets.HTTPClient,
	stdin Stdin,
	logger logs.Logger,
) Load {
	return func(ctx context.Context, path string) (ret diagnostics.Source, err error) {
		defer func() {
			if err == nil {
				logger.DebugContext(ctx, "source loaded",
					"name", ret.Name,
					"bytes", len(ret.Text),
				)
			}
		}()

		switch {

		case path == "":
			return ret, ErrEmptyPath

		case path == "-":
			text, err := readAll(stdin)
			if err != nil {
				return ret, fmt.Errorf("read stdin: %w", err)
			}
			return diagnostics.Source{
				Name: "<stdin>",
				Text: text,
			}, nil

		case isURL(path):
			text, err := fetch(ctx, client, path)
			if err != nil {
				return ret, fmt.Errorf("fetch %s: %w", path, err)
			}
			return diagnostics.Source{
				Name: path,
				Text: text,
			}, nil

		}

		f, err := os.Open(path)
		if err != nil {
			return ret, err
		}
		defer f.Close()
		text, err := readAll(f)
		if err != nil {
			return ret, fmt.Errorf("read %s: %w", path, err)
		}
		return diagnostics.Source{
			Name: path,
			Text: text,
		}, nil
	}
}

func isURL(path string) bool {
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func fetch(ctx context.Context, client nets.HTTPClient, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %s", resp.Status)
	}
	return readAll(resp.Body)
}

func readAll(r io.Reader) (string, error) {
	buf := new(strings.Builder)
	n, err := io.Copy(buf, io.LimitReader(r, MaxSize+1))
	if err != nil {
		return "", err
	}
	if n > MaxSize {
		return "", fmt.Errorf("source larger than %d bytes", MaxSize)
	}
	return buf.String(), nil
}
