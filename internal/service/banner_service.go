package service

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/AVIDS2/Astris-Blog/internal/storage"
)

// BannerService manages the rotating site banner images, one directory per
// device class, over the file store. There is no database state: the
// directory listing is the source of truth.
type BannerService struct {
	store storage.FileStore
}

func NewBannerService(store storage.FileStore) *BannerService {
	return &BannerService{store: store}
}

var bannerDevices = map[string]string{
	"desktop": "desktop-banner",
	"mobile":  "mobile-banner",
}

type BannerList struct {
	Desktop []string `json:"desktop"`
	Mobile  []string `json:"mobile"`
}

func (s *BannerService) List() (*BannerList, error) {
	desktop, err := s.store.List(bannerDevices["desktop"])
	if err != nil {
		return nil, err
	}
	mobile, err := s.store.List(bannerDevices["mobile"])
	if err != nil {
		return nil, err
	}
	return &BannerList{Desktop: bannerURLs("desktop", desktop), Mobile: bannerURLs("mobile", mobile)}, nil
}

func bannerURLs(device string, names []string) []string {
	urls := make([]string, 0, len(names))
	for _, n := range names {
		urls = append(urls, "/uploads/"+bannerDevices[device]+"/"+n)
	}
	return urls
}

func (s *BannerService) Upload(device, filename string, r io.Reader) error {
	dir, ok := bannerDevices[device]
	if !ok {
		return fmt.Errorf("%w: device must be desktop or mobile", ErrInvalidInput)
	}
	if !storage.AllowedImageExt(filename) {
		return fmt.Errorf("%w: unsupported image format", ErrInvalidInput)
	}
	return s.store.Save(dir, filename, r)
}

func (s *BannerService) Delete(device, filename string) error {
	dir, ok := bannerDevices[device]
	if !ok {
		return fmt.Errorf("%w: device must be desktop or mobile", ErrInvalidInput)
	}
	return s.store.Delete(dir, filename)
}

// SaveUpload stores an editor image under a random name and returns the
// public URL path.
func SaveUpload(store storage.FileStore, ext string, r io.Reader) (string, error) {
	if !storage.AllowedImageExt("x" + ext) {
		return "", fmt.Errorf("%w: unsupported image format", ErrInvalidInput)
	}
	name := uuid.New().String() + ext
	if err := store.Save("photos", name, r); err != nil {
		return "", err
	}
	return "/uploads/photos/" + name, nil
}
