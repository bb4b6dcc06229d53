// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"path"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// contentHandler renders one content type. It never fails: problems are
// reported through the Warning and Failed fields of the fragment.
type contentHandler func(ctx context.Context, record models.NoteRecord, pass PassContext) models.Fragment

// TransformerDeps are the collaborators of [NewContentTransformer].
type TransformerDeps struct {
	Backend   adapter.BackendAdapter
	Documents adapter.DocumentStore
	Assets    adapter.AssetStore
	Cipher    crypto.Cipher
	Images    ImageLocalizer

	// Location is used for createdAt values without a zone. Nil means
	// time.Local.
	Location *time.Location

	Logger *logger.Logger
}

type contentTransformer struct {
	backend  adapter.BackendAdapter
	docs     adapter.DocumentStore
	assets   adapter.AssetStore
	cipher   crypto.Cipher
	images   ImageLocalizer
	location *time.Location
	ids      *utils.UUIDGenerator
	now      func() time.Time

	handlers map[models.ContentType]contentHandler

	logger *logger.Logger
}

// NewContentTransformer builds the transformer and checks that every
// content type has a handler.
func NewContentTransformer(deps TransformerDeps) (ContentTransformer, error) {
	t := &contentTransformer{
		backend:  deps.Backend,
		docs:     deps.Documents,
		assets:   deps.Assets,
		cipher:   deps.Cipher,
		images:   deps.Images,
		location: deps.Location,
		ids:      utils.NewUUIDGenerator(),
		now:      time.Now,
		logger:   deps.Logger,
	}
	if t.location == nil {
		t.location = time.Local
	}
	if t.logger == nil {
		t.logger = logger.Nop()
	}

	t.handlers = map[models.ContentType]contentHandler{
		models.ContentText:        t.text,
		models.ContentSecretText:  t.secretText,
		models.ContentImage:       t.image,
		models.ContentSecretImage: t.secretImage,
		models.ContentLink:        t.link,
	}
	for _, ct := range models.ContentTypes {
		if _, ok := t.handlers[ct]; !ok {
			return nil, fmt.Errorf("%w: no handler for %q", ErrIncompleteHandlerTable, ct)
		}
	}

	return t, nil
}

// Transform implements [ContentTransformer]. A createdAt that cannot be
// parsed does not fail the record: the fragment is stamped with the current
// time and carries a warning.
func (t *contentTransformer) Transform(ctx context.Context, record models.NoteRecord, pass PassContext) (frag models.Fragment, err error) {
	if err = ctx.Err(); err != nil {
		return models.Fragment{}, err
	}

	handler, ok := t.handlers[record.ContentType]
	if !ok {
		return models.Fragment{}, fmt.Errorf("%w: %q", ErrUnsupportedContentType, record.ContentType)
	}

	defer func() {
		if r := recover(); r != nil {
			t.logger.Error().
				Str("record_id", record.ID).
				Interface("panic", r).
				Msg("content handler panicked")
			frag = models.Fragment{}
			err = fmt.Errorf("%w: %v", ErrTransformPanic, r)
		}
	}()

	frag = handler(ctx, record, pass)
	if err = ctx.Err(); err != nil {
		return models.Fragment{}, err
	}

	frag.RecordID = record.ID
	ts, tsErr := record.Timestamp(t.location)
	if tsErr != nil {
		ts = t.now()
		frag.Warning = joinWarnings(frag.Warning, tsErr.Error())
	}
	frag.Timestamp = ts

	return frag, nil
}

func (t *contentTransformer) text(_ context.Context, record models.NoteRecord, _ PassContext) models.Fragment {
	return models.Fragment{Body: record.Content}
}

// secretText writes the ciphertext itself when it cannot be decrypted, so
// that the record is not lost and can be decrypted by hand later.
func (t *contentTransformer) secretText(_ context.Context, record models.NoteRecord, pass PassContext) models.Fragment {
	plain, err := t.decryptText(record.Content, pass)
	if err != nil {
		warning := fmt.Sprintf("failed to decrypt text: %v", err)
		return models.Fragment{
			Body:    record.Content + "\n\n" + annotate(warning),
			Warning: warning,
		}
	}
	return models.Fragment{Body: plain}
}

func (t *contentTransformer) image(ctx context.Context, record models.NoteRecord, _ PassContext) models.Fragment {
	img, err := t.backend.FetchImageContent(ctx, record.Content)
	if err != nil {
		return placeholder("image processing failed", err)
	}

	assetPath, err := t.assets.UploadAsset(ctx, t.assetName(img.Name, ""), img.Data)
	if err != nil {
		return placeholder("image processing failed", err)
	}

	return models.Fragment{Body: imageMarkdown(assetPath)}
}

// secretImage uploads the downloaded bytes unchanged when they cannot be
// decrypted and annotates the image with a warning.
func (t *contentTransformer) secretImage(ctx context.Context, record models.NoteRecord, pass PassContext) models.Fragment {
	img, err := t.backend.FetchImageContent(ctx, record.Content)
	if err != nil {
		return placeholder("encrypted image processing failed", err)
	}

	name, data, warning := t.assetName(img.Name, ""), img.Data, ""
	decrypted, err := t.decryptImage(img.Data, pass)
	if err != nil {
		warning = fmt.Sprintf("failed to decrypt image: %v", err)
	} else {
		name, data = t.assetName(img.Name, decrypted.Extension), decrypted.Data
	}

	assetPath, err := t.assets.UploadAsset(ctx, name, data)
	if err != nil {
		return placeholder("encrypted image processing failed", err)
	}

	frag := models.Fragment{Body: imageMarkdown(assetPath), Warning: warning}
	if warning != "" {
		frag.Body += "\n\n" + annotate(warning)
	}
	return frag
}

// link stores the page snapshot as a sub-document of the target document
// and references it from the fragment.
func (t *contentTransformer) link(ctx context.Context, record models.NoteRecord, pass PassContext) models.Fragment {
	content, err := t.backend.FetchLinkContent(ctx, record.ID)
	if err != nil {
		return placeholder("link processing failed", err)
	}

	markdown, imageErrs := t.images.Localize(ctx, content.Content)

	hpath, err := t.docs.ResolvePathByID(ctx, pass.Config.DocumentID)
	if err != nil {
		return placeholder("link processing failed", err)
	}

	title := documentTitle(content.Title, record.ID)
	docID, err := t.docs.CreateDocument(ctx, pass.Config.NotebookID, strings.TrimRight(hpath, "/")+"/"+title, markdown)
	if err != nil {
		return placeholder("link processing failed", err)
	}

	frag := models.Fragment{Body: blockRef(docID, title)}
	if len(imageErrs) > 0 {
		frag.Warning = fmt.Sprintf("%d image(s) of %q kept their remote address: %v",
			len(imageErrs), title, errors.Join(imageErrs...))
	}
	return frag
}

func (t *contentTransformer) decryptText(ciphertext string, pass PassContext) (string, error) {
	if pass.KeysErr != nil {
		return "", pass.KeysErr
	}
	return t.cipher.DecryptText(ciphertext, pass.Keys)
}

func (t *contentTransformer) decryptImage(payload []byte, pass PassContext) (crypto.DecryptedImage, error) {
	if pass.KeysErr != nil {
		return crypto.DecryptedImage{}, pass.KeysErr
	}
	return t.cipher.DecryptImage(payload, pass.Keys)
}

// assetName keeps the base of name and swaps in ext when given. Names that
// are empty or only an extension get a generated base.
func (t *contentTransformer) assetName(name, ext string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" {
		name = ""
	}

	base := strings.TrimSuffix(name, path.Ext(name))
	if base == "" {
		base = t.ids.Generate()
	}
	if ext == "" {
		ext = strings.TrimPrefix(path.Ext(name), ".")
	}
	if ext == "" {
		return base
	}
	return base + "." + ext
}

func placeholder(prefix string, err error) models.Fragment {
	msg := prefix + ": " + err.Error()
	return models.Fragment{Body: msg, Warning: msg, Failed: true}
}

func annotate(warning string) string {
	return "> ⚠️ " + warning
}

func imageMarkdown(assetPath string) string {
	return "![image](" + assetPath + ")"
}

func blockRef(id, title string) string {
	return `<span data-type="block-ref" data-subtype="d" data-id="` + id + `">` + html.EscapeString(title) + `</span>`
}

var titleReplacer = strings.NewReplacer("/", "-", `\`, "-", "\r", " ", "\n", " ", "\t", " ")

// documentTitle makes title usable as the last element of a document path.
func documentTitle(title, recordID string) string {
	title = strings.TrimSpace(titleReplacer.Replace(title))
	if title == "" {
		return "link " + recordID
	}
	return title
}

func joinWarnings(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
