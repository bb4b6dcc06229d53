// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
)

// LinkImageOptions tune the downloads made by [NewLinkImageRewriter].
type LinkImageOptions struct {
	// Concurrency bounds parallel downloads. Values below 1 mean 1.
	Concurrency int

	// RatePerSecond paces download starts. Zero or negative disables pacing.
	RatePerSecond float64

	// Timeout bounds a single download.
	Timeout time.Duration
}

type linkImageRewriter struct {
	client  *utils.HTTPClient
	assets  adapter.AssetStore
	limiter *rate.Limiter
	limit   int
	ids     *utils.UUIDGenerator

	logger *logger.Logger
}

// NewLinkImageRewriter returns an [ImageLocalizer] that downloads remote
// images without credentials and re-uploads them to assets.
func NewLinkImageRewriter(assets adapter.AssetStore, opts LinkImageOptions, logger *logger.Logger) ImageLocalizer {
	client := utils.NewHTTPClient()
	client.SetTimeout(opts.Timeout)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	return &linkImageRewriter{
		client:  client,
		assets:  assets,
		limiter: limiter,
		limit:   limit,
		ids:     utils.NewUUIDGenerator(),
		logger:  logger,
	}
}

// Localize implements [ImageLocalizer]. Images are found with a CommonMark
// parser, so inline, angle-bracket and reference-style destinations are all
// covered. Every distinct URL is fetched once; downloads run concurrently
// and the rewrite is applied afterwards in document order. An image whose
// download fails keeps its remote reference.
func (r *linkImageRewriter) Localize(ctx context.Context, markdown string) (string, []error) {
	var urls []string
	for _, u := range remoteImages(markdown) {
		if len(destinationSpans(markdown, u)) > 0 {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return markdown, nil
	}

	assetPaths := make([]string, len(urls))
	errs := make([]error, len(urls))

	var g errgroup.Group
	g.SetLimit(r.limit)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			assetPaths[i], errs[i] = r.localizeOne(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	var spans []imageSpan
	for i, u := range urls {
		if assetPaths[i] == "" {
			continue
		}
		for _, sp := range destinationSpans(markdown, u) {
			spans = append(spans, imageSpan{start: sp[0], stop: sp[1], asset: assetPaths[i]})
		}
	}
	slices.SortFunc(spans, func(a, b imageSpan) int { return a.start - b.start })

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		if sp.start < last {
			continue
		}
		b.WriteString(markdown[last:sp.start])
		b.WriteString(sp.asset)
		last = sp.stop
	}
	b.WriteString(markdown[last:])

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	return b.String(), failed
}

type imageSpan struct {
	start, stop int
	asset       string
}

// remoteImages returns the distinct http(s) image destinations of markdown
// in document order. Reference-style images come back resolved.
func remoteImages(markdown string) []string {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var urls []string
	seen := make(map[string]struct{})
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		img, ok := n.(*ast.Image)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		u := string(img.Destination)
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return ast.WalkContinue, nil
		}
		if _, dup := seen[u]; !dup {
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
		return ast.WalkContinue, nil
	})
	return urls
}

// destinationSpans returns the byte ranges where dest is written verbatim as
// a link destination: after "(" or "<" of an inline link, or after "]:" of a
// reference definition, and followed by whitespace, ")", ">" or the end of
// the text. A destination written with escapes or entities is not found and
// stays untouched.
func destinationSpans(markdown, dest string) [][2]int {
	var spans [][2]int
	for from := 0; ; {
		i := strings.Index(markdown[from:], dest)
		if i < 0 {
			return spans
		}
		start := from + i
		stop := start + len(dest)
		from = start + 1
		if opensDestination(markdown[:start]) && closesDestination(markdown[stop:]) {
			spans = append(spans, [2]int{start, stop})
			from = stop
		}
	}
}

func opensDestination(before string) bool {
	trimmed := strings.TrimRight(before, " \t")
	switch {
	case strings.HasSuffix(before, "<"):
		return true
	case strings.HasSuffix(trimmed, "]:"):
		return true
	case strings.HasSuffix(trimmed, "("):
		return true
	}
	return false
}

func closesDestination(after string) bool {
	if after == "" {
		return true
	}
	switch after[0] {
	case ' ', '\t', '\r', '\n', ')', '>':
		return true
	}
	return false
}

func (r *linkImageRewriter) localizeOne(ctx context.Context, rawURL string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}

	resp, err := r.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return "", fmt.Errorf("download %s: http %d", rawURL, resp.StatusCode())
	}

	name := r.ids.Generate() + imageExtension(rawURL, resp.Header().Get("Content-Type"))
	assetPath, err := r.assets.UploadAsset(ctx, name, resp.Body())
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", rawURL, err)
	}

	r.logger.Debug().Str("url", rawURL).Str("asset", assetPath).Msg("link image localized")
	return assetPath, nil
}

// imageExtension picks a file extension (with dot) from the response type,
// falling back to the URL path.
func imageExtension(rawURL, contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && strings.HasPrefix(mediaType, "image/") {
		switch sub := strings.TrimPrefix(mediaType, "image/"); sub {
		case "jpeg":
			return ".jpg"
		case "svg+xml":
			return ".svg"
		default:
			return "." + sub
		}
	}

	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if ext := strings.ToLower(path.Ext(p)); len(ext) > 1 && len(ext) <= 5 {
		return ext
	}
	return ".png"
}
