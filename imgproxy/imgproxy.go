// Package imgproxy fetches remote images for the frontend and optionally
// scales them down.
package imgproxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"tripcraft/utils"
)

const (
	fetchTimeout = 8 * time.Second
	maxBytes     = 10 << 20
	maxWidth     = 2000
	cacheTTL     = 10 * time.Minute
)

var errUpstream = errors.New("upstream error")

type image struct {
	contentType string
	body        []byte
}

type Proxy struct {
	client *http.Client
	cache  *cache.Cache
}

// New uses client for upstream requests, or a default client when nil.
func New(client *http.Client) *Proxy {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Proxy{client: client, cache: cache.New(cacheTTL, 2*cacheTTL)}
}

// Handler serves GET /api/img?url=&w=
func (p *Proxy) Handler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	target, err := parseTarget(r.URL.Query().Get("url"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid url")
		return
	}
	width := 0
	if raw := r.URL.Query().Get("w"); raw != "" {
		width, err = strconv.Atoi(raw)
		if err != nil || width <= 0 || width > maxWidth {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid width")
			return
		}
	}

	key := target + "|" + strconv.Itoa(width)
	var img image
	if cached, ok := p.cache.Get(key); ok {
		img = cached.(image)
	} else {
		img, err = p.load(r.Context(), target, width)
		if err != nil {
			log.Warn().Err(err).Str("url", target).Msg("image proxy")
			utils.RespondWithError(w, http.StatusBadGateway, "Upstream error")
			return
		}
		p.cache.SetDefault(key, img)
	}

	w.Header().Set("Content-Type", img.contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.body)
}

func parseTarget(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("unsupported url %q", raw)
	}
	return u.String(), nil
}

func (p *Proxy) load(ctx context.Context, target string, width int) (image, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return image{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return image{}, fmt.Errorf("%w: %v", errUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return image{}, fmt.Errorf("%w: status %d", errUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return image{}, fmt.Errorf("%w: read body: %v", errUpstream, err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if width == 0 {
		return image{contentType: contentType, body: body}, nil
	}
	return resize(body, contentType, width)
}

func resize(body []byte, contentType string, width int) (image, error) {
	src, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return image{}, fmt.Errorf("%w: decode image: %v", errUpstream, err)
	}
	if src.Bounds().Dx() > width {
		src = imaging.Resize(src, width, 0, imaging.Lanczos)
	}

	format, outType := imaging.JPEG, "image/jpeg"
	if strings.HasPrefix(contentType, "image/png") {
		format, outType = imaging.PNG, "image/png"
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, format); err != nil {
		return image{}, fmt.Errorf("encode image: %w", err)
	}
	return image{contentType: outType, body: buf.Bytes()}, nil
}
