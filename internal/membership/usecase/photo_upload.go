package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/goerror"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/jwt"
	"github.com/changwon82/alllove-church-app-v2-sub001/internal/pkg/storage"
)

//nolint:gochecknoglobals // global for fast reuse
var photoContentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var errPhotoTooLarge = errors.New("photo exceeds max size")

type PhotoUploadInput struct {
	File        io.Reader
	ContentType string
}

func (s *Usecase) PhotoUpload(ctx context.Context, in PhotoUploadInput) error {
	ctx, span := s.startSpan(ctx, "PhotoUpload")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	if in.File == nil {
		return goerror.NewInvalidInput(nil, "photo", "photo file is required")
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := photoContentTypeExt[contentType]
	if !ok {
		return goerror.NewInvalidInput(nil, "photo", "unsupported photo content type")
	}

	member, err := s.repoDB.GetMemberByID(ctx, clm.UserID, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "member account not found", "member_id", clm.UserID)
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get member by id", "member_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.ensureMemberStatusAllowed(ctx, member.ID, member.Status); err != nil {
		return err
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.membership.photo_bucket"))
	baseURL := strings.TrimSpace(s.cfg.GetString("modules.membership.photo_base_url"))
	key := fmt.Sprintf("%d/%s%s", member.ID, s.uuid.Generate(), ext)
	maxSize := s.cfg.GetInt64("modules.membership.photo_max_size_bytes")

	reader := &maxBytesReader{
		r:   in.File,
		max: maxSize,
	}
	_, err = s.storage.PutObject(ctx, bucket, key, reader, storage.PutOptions{
		Size:        -1,
		ContentType: contentType,
		Metadata:    map[string]string{"member_id": strconv.FormatInt(member.ID, 10)},
	})
	if err != nil {
		if errors.Is(err, errPhotoTooLarge) {
			return goerror.NewInvalidInput(errPhotoTooLarge)
		}
		slog.ErrorContext(ctx, "failed to upload member photo", "member_id", member.ID, "error", err)
		return goerror.NewServer(err)
	}

	photoURL := baseURL + "/" + key
	if err := s.repoDB.UpdateMemberPhoto(ctx, member.ID, photoURL); err != nil {
		slog.ErrorContext(ctx, "failed to update member photo", "member_id", member.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type maxBytesReader struct {
	r     io.Reader
	max   int64
	read  int64
	buf   [1]byte
	ended bool
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.read >= m.max {
		if m.ended {
			return 0, errPhotoTooLarge
		}

		n, err := m.r.Read(m.buf[:])
		if n > 0 {
			m.ended = true
			return 0, errPhotoTooLarge
		}
		if err == nil {
			m.ended = true
			return 0, errPhotoTooLarge
		}
		return 0, err
	}

	remaining := m.max - m.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := m.r.Read(p)
	m.read += int64(n)
	return n, err
}
