package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nfnt/resize"
)

const (
	maxFileSize       = 5 * 1024 * 1024
	compressThreshold = 100 * 1024
	imagesRoot        = "./images"
)

var s3Client *minio.Client

// InitImageStore wires the optional S3 mirror from the environment. Without
// S3_ENDPOINT images live on local disk only, which is how the single-shop
// deployment runs.
func InitImageStore() {
	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint == "" {
		return
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), ""),
		Secure: true,
	})
	if err != nil {
		log.Printf("image store: s3 mirror disabled: %v\n", err)
		return
	}
	s3Client = client
}

func serveImage(c *gin.Context, kind string) {
	name := filepath.Base(c.Param("name"))
	path := filepath.Join(imagesRoot, kind, name)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.File(path)
}

func GetImageCategoryByName(c *gin.Context) { serveImage(c, "category") }
func GetImageProductByName(c *gin.Context)  { serveImage(c, "product") }
func GetImageOfferByName(c *gin.Context)    { serveImage(c, "offer") }

// SaveImage stores an upload under images/<kind>/<filename> and returns the
// URL path clients use to fetch it back. Files above the compression
// threshold are re-encoded as JPEG at reduced size; smaller ones are kept
// byte for byte.
func SaveImage(file *multipart.FileHeader, kind, filename string) (string, error) {
	if file.Size > maxFileSize {
		return "", fmt.Errorf("file size exceeds the 5MB limit")
	}

	dir := filepath.Join(imagesRoot, kind)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create image directory: %v", err)
		}
	}
	fullPath := filepath.Join(dir, filename)

	srcFile, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer srcFile.Close()

	var data bytes.Buffer
	if file.Size > compressThreshold {
		fileExt := strings.ToLower(filepath.Ext(file.Filename))
		var img image.Image
		if fileExt == ".png" {
			img, err = png.Decode(srcFile)
		} else {
			img, err = jpeg.Decode(srcFile)
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode image: %v", err)
		}

		compressed := resize.Resize(800, 0, img, resize.Lanczos3)
		if err := jpeg.Encode(&data, compressed, &jpeg.Options{Quality: 80}); err != nil {
			return "", fmt.Errorf("failed to encode compressed image: %v", err)
		}
	} else {
		if _, err := data.ReadFrom(srcFile); err != nil {
			return "", fmt.Errorf("failed to read uploaded file: %v", err)
		}
	}

	if err := os.WriteFile(fullPath, data.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to save image: %v", err)
	}

	if s3Client != nil {
		mirrorToS3(kind+"/"+filename, data.Bytes())
	}

	return "/images/" + kind + "/" + filename, nil
}

func mirrorToS3(key string, data []byte) {
	bucket := os.Getenv("S3_BUCKET")
	_, err := s3Client.PutObject(context.Background(), bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		// The local copy is authoritative; a failed mirror is only logged.
		log.Printf("image store: s3 mirror of %s failed: %v\n", key, err)
	}
}

// DeleteImage removes a stored image by its URL path. A missing file is not
// an error: the record is already in the wanted state.
func DeleteImage(imagePath string) {
	fullPath := filepath.Join(".", filepath.Clean(imagePath))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		log.Printf("image store: delete %s: %v\n", imagePath, err)
	}
}

// RenameImage moves a stored image from one URL path to another.
func RenameImage(oldPath, newPath string) error {
	return os.Rename(
		filepath.Join(".", filepath.Clean(oldPath)),
		filepath.Join(".", filepath.Clean(newPath)),
	)
}
