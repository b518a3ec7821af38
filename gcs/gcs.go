package gcs

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

var Client *storage.Client

var bucketName string

// InitGCS connects to Google Cloud Storage and checks the image bucket.
func InitGCS() {
	ctx := context.Background()

	bucketName = os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		bucketName = "stylehive-product-images"
	}

	var err error
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		Client, err = storage.NewClient(ctx, option.WithCredentialsFile(creds))
	} else {
		Client, err = storage.NewClient(ctx)
	}
	if err != nil {
		log.Fatalf("Failed to connect to Google Cloud Storage: %v", err)
	}

	if _, err := Client.Bucket(bucketName).Attrs(ctx); err != nil {
		log.Fatalf("Cannot access bucket %s: %v", bucketName, err)
	}
	log.Printf("Bucket %s is ready", bucketName)
}

func Close() {
	if Client != nil {
		Client.Close()
	}
}

// UploadImage streams an image into the bucket under the given folder and
// returns its public URL. Object names get a UUID plus nano timestamp so
// re-uploads never collide.
func UploadImage(reader io.Reader, contentType, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	extension := "jpg"
	switch strings.ToLower(contentType) {
	case "image/png":
		extension = "png"
	case "image/jpeg", "image/jpg":
		extension = "jpeg"
	case "image/webp":
		extension = "webp"
	default:
		log.Printf("Unsupported content type: %s, defaulting to .jpg", contentType)
	}

	objectName := fmt.Sprintf("%s/%s_%d.%s", folder, uuid.NewString(), time.Now().UnixNano(), extension)

	writer := Client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	writer.ContentType = contentType

	if _, err := io.Copy(writer, reader); err != nil {
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName), nil
}
