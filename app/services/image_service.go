package services

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	LargeMaxWidth = 1400
	SmallSize     = 300

	CategoryThumbWidth  = 450
	CategoryThumbHeight = 600

	TempDir          = "temp"
	ProductLargeDir  = "uploads/products/large"
	ProductSmallDir  = "uploads/products/small"
	CategoryDir      = "uploads/category"
	CategoryThumbDir = "uploads/category/thumb"
)

var allowedImageExt = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

var ErrUnsupportedImage = errors.New("unsupported image type, allowed: jpg, jpeg, png, gif")

// ImageService owns every file written under the public directory: staged temp uploads,
// product derivatives and category images.
type ImageService struct {
	publicDir string
}

func NewImageService(publicDir string) *ImageService {
	return &ImageService{publicDir: publicDir}
}

// ImageExt returns the lower-cased extension of name without the dot.
func ImageExt(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func IsAllowedImageExt(ext string) bool {
	return allowedImageExt[strings.ToLower(ext)]
}

// ProductImageName is the file name shared by both derivatives of one image row.
func ProductImageName(productID, imageID uint, at time.Time, ext string) string {
	return fmt.Sprintf("%d-%d-%d.%s", productID, imageID, at.Unix(), ext)
}

func (s *ImageService) TempPath(name string) string {
	return filepath.Join(s.publicDir, TempDir, name)
}

func (s *ImageService) LargePath(name string) string {
	return filepath.Join(s.publicDir, ProductLargeDir, name)
}

func (s *ImageService) SmallPath(name string) string {
	return filepath.Join(s.publicDir, ProductSmallDir, name)
}

func (s *ImageService) CategoryPath(name string) string {
	return filepath.Join(s.publicDir, CategoryDir, name)
}

func (s *ImageService) CategoryThumbPath(name string) string {
	return filepath.Join(s.publicDir, CategoryThumbDir, name)
}

func TempURL(name string) string  { return "/" + path.Join(TempDir, name) }
func LargeURL(name string) string { return "/" + path.Join(ProductLargeDir, name) }
func SmallURL(name string) string { return "/" + path.Join(ProductSmallDir, name) }
func CategoryThumbURL(name string) string {
	return "/" + path.Join(CategoryThumbDir, name)
}

// SaveTemp stores an upload under temp/ with a generated name and returns that name.
func (s *ImageService) SaveTemp(r io.Reader, originalName string) (string, error) {
	ext := ImageExt(originalName)
	if !IsAllowedImageExt(ext) {
		return "", ErrUnsupportedImage
	}

	name := uuid.New().String() + "." + ext
	dst := s.TempPath(name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return name, nil
}

func (s *ImageService) DeleteTemp(name string) error {
	return removeIfExists(s.TempPath(name))
}

// GenerateProductDerivatives writes the large and small variants of the image at src.
func (s *ImageService) GenerateProductDerivatives(src, filename string) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to open source image %s: %w", src, err)
	}
	return s.writeDerivatives(img, filename)
}

func (s *ImageService) GenerateProductDerivativesFrom(r io.Reader, filename string) error {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode uploaded image: %w", err)
	}
	return s.writeDerivatives(img, filename)
}

func (s *ImageService) writeDerivatives(img image.Image, filename string) error {
	if err := save(ResizeLarge(img), s.LargePath(filename)); err != nil {
		return err
	}
	return save(FitSmall(img), s.SmallPath(filename))
}

// ResizeLarge scales img down to LargeMaxWidth keeping its aspect ratio. Narrower images are
// returned unchanged.
func ResizeLarge(img image.Image) image.Image {
	if img.Bounds().Dx() <= LargeMaxWidth {
		return img
	}
	return imaging.Resize(img, LargeMaxWidth, 0, imaging.Lanczos)
}

// FitSmall crops img around its centre to exactly SmallSize x SmallSize.
func FitSmall(img image.Image) image.Image {
	return imaging.Fill(img, SmallSize, SmallSize, imaging.Center, imaging.Lanczos)
}

// DeleteProductDerivatives removes both variants. Missing files are not an error.
func (s *ImageService) DeleteProductDerivatives(filename string) error {
	return errors.Join(
		removeIfExists(s.LargePath(filename)),
		removeIfExists(s.SmallPath(filename)),
	)
}

// SaveCategoryImage copies the staged temp image to uploads/category/{name} and writes a
// filled thumbnail next to it.
func (s *ImageService) SaveCategoryImage(tempName, name string) error {
	src := s.TempPath(tempName)
	if err := copyFile(src, s.CategoryPath(name)); err != nil {
		return err
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to open category image %s: %w", src, err)
	}
	thumb := imaging.Fill(img, CategoryThumbWidth, CategoryThumbHeight, imaging.Center, imaging.Lanczos)
	return save(thumb, s.CategoryThumbPath(name))
}

func (s *ImageService) DeleteCategoryImage(name string) error {
	if name == "" {
		return nil
	}
	return errors.Join(
		removeIfExists(s.CategoryPath(name)),
		removeIfExists(s.CategoryThumbPath(name)),
	)
}

func save(img image.Image, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create dir for %s: %w", dst, err)
	}
	if err := imaging.Save(img, dst); err != nil {
		return fmt.Errorf("failed to save image %s: %w", dst, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create dir for %s: %w", dst, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

func removeIfExists(p string) error {
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		log.Printf("removeIfExists: failed to delete %s: %v", p, err)
		return err
	}
	return nil
}
