// Package storage puts avatar files somewhere URL-addressable: local
// disk served under /uploads by default, Cloudinary when configured.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type Store interface {
	// SaveAvatar stores the file and returns the URL to reference it by.
	SaveAvatar(ctx context.Context, ownerHex string, file multipart.File, header *multipart.FileHeader) (string, error)
}

// New picks the backend: Cloudinary when a URL is configured, local
// disk otherwise.
func New(cloudinaryURL, uploadDir string) (Store, error) {
	if cloudinaryURL != "" {
		return NewCloudinaryStore(cloudinaryURL)
	}
	return NewLocalStore(uploadDir)
}

// LocalStore writes files into a directory that the router serves as
// static content at /uploads.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) SaveAvatar(_ context.Context, _ string, file multipart.File, header *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(header.Filename)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	return "/uploads/" + name, nil
}

// CloudinaryStore uploads avatars to Cloudinary and returns the secure
// delivery URL.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("configure cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) SaveAvatar(ctx context.Context, ownerHex string, file multipart.File, _ *multipart.FileHeader) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         "sparked/avatars",
		PublicID:       ownerHex,
		Transformation: "c_limit,w_400,h_400,q_auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return res.SecureURL, nil
}
