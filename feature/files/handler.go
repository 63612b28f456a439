package files

import (
	"errors"
	"io"
	"mime"
	"path"
	"strconv"
	"strings"

	"object-gateway/core/gateway"
	"object-gateway/core/logger"
	"object-gateway/core/storage"
	"object-gateway/core/tenant"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TenantHeader selects the tenant a request acts for.
const TenantHeader = "X-Tenant-ID"

// Handler handles HTTP requests for buckets and objects.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the bucket, file and tenant routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	buckets := app.Group("/buckets")
	buckets.Get("/", h.HandleListBuckets)
	buckets.Head("/:bucket", h.HandleBucketExists)
	buckets.Put("/:bucket", h.HandleCreateBucket)
	buckets.Delete("/:bucket", h.HandleDeleteBucket)
	buckets.Put("/:bucket/versioning", h.HandleSetVersioning)

	files := app.Group("/files")
	files.Get("/:bucket", h.HandleListObjects)
	files.Get("/:bucket/search", h.HandleFindByTags)
	files.Post("/:bucket", h.HandleUpload)
	files.Get("/:bucket/object", h.HandleDownload)
	files.Get("/:bucket/presign", h.HandlePresign)
	files.Delete("/:bucket/object", h.HandleDeleteObject)
	files.Post("/:bucket/delete", h.HandleDeleteObjects)

	app.Post("/tenants/refresh", h.HandleRefresh)
}

type deleteRequest struct {
	Objects []string `json:"objects"`
}

// HandleListBuckets lists the caller's buckets.
func (h *Handler) HandleListBuckets(c *fiber.Ctx) error {
	buckets, err := h.service.ListBuckets(c.UserContext(), tenantOf(c))
	if err != nil {
		return h.fail(c, "List buckets failed", err)
	}
	return c.JSON(fiber.Map{"buckets": buckets})
}

// HandleBucketExists answers 200 when the bucket exists and 404 otherwise.
func (h *Handler) HandleBucketExists(c *fiber.Ctx) error {
	exists, err := h.service.BucketExists(c.UserContext(), tenantOf(c), c.Params("bucket"))
	if err != nil {
		return h.fail(c, "Bucket exists check failed", err)
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handler) HandleCreateBucket(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	if err := h.service.CreateBucket(c.UserContext(), tenantOf(c), bucket); err != nil {
		return h.fail(c, "Create bucket failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bucket": bucket})
}

func (h *Handler) HandleDeleteBucket(c *fiber.Ctx) error {
	if err := h.service.DeleteBucket(c.UserContext(), tenantOf(c), c.Params("bucket")); err != nil {
		return h.fail(c, "Delete bucket failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSetVersioning expects ?enabled=true|false.
func (h *Handler) HandleSetVersioning(c *fiber.Ctx) error {
	enabled, err := strconv.ParseBool(c.Query("enabled"))
	if err != nil {
		return h.fail(c, "Set versioning failed", storage.Validation("set versioning", c.Params("bucket"), "enabled must be true or false"))
	}
	if err := h.service.SetVersioning(c.UserContext(), tenantOf(c), c.Params("bucket"), enabled); err != nil {
		return h.fail(c, "Set versioning failed", err)
	}
	return c.JSON(fiber.Map{"bucket": c.Params("bucket"), "versioning": enabled})
}

func (h *Handler) HandleListObjects(c *fiber.Ctx) error {
	objects, err := h.service.ListObjects(c.UserContext(), tenantOf(c), c.Params("bucket"))
	if err != nil {
		return h.fail(c, "List objects failed", err)
	}
	return c.JSON(fiber.Map{"objects": objects})
}

// HandleFindByTags expects ?mode=and|or and one or more tag=key:value parameters.
func (h *Handler) HandleFindByTags(c *fiber.Ctx) error {
	mode, err := storage.ParseMatchMode(c.Query("mode"))
	if err != nil {
		return h.fail(c, "Tag search failed", err)
	}

	var raw []string
	for _, v := range c.Context().QueryArgs().PeekMulti("tag") {
		raw = append(raw, string(v))
	}
	tags, err := ParseTags(raw)
	if err != nil {
		return h.fail(c, "Tag search failed", err)
	}

	objects, err := h.service.FindByTags(c.UserContext(), tenantOf(c), c.Params("bucket"), tags, mode)
	if err != nil {
		return h.fail(c, "Tag search failed", err)
	}
	return c.JSON(fiber.Map{"objects": objects})
}

// HandleUpload accepts a multipart form: file, optional path and name, and tag=key:value fields.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	fh, err := c.FormFile("file")
	if err != nil {
		return h.fail(c, "Upload failed", storage.Validation("upload", bucket, "missing file field"))
	}

	f, err := fh.Open()
	if err != nil {
		return h.fail(c, "Upload failed", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return h.fail(c, "Upload failed", err)
	}

	var rawTags []string
	if form, err := c.MultipartForm(); err == nil {
		rawTags = form.Value["tag"]
	}
	tags, err := ParseTags(rawTags)
	if err != nil {
		return h.fail(c, "Upload failed", err)
	}

	name := c.FormValue("name")
	if name == "" {
		name = fh.Filename
	}
	in := gateway.UploadInput{
		Bucket:      bucket,
		Path:        c.FormValue("path"),
		ObjectName:  name,
		Content:     content,
		ContentType: fh.Header.Get("Content-Type"),
		Tags:        tags,
	}
	if err := h.service.Upload(c.UserContext(), tenantOf(c), in); err != nil {
		return h.fail(c, "Upload failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bucket": bucket, "key": in.Key(), "size": len(content)})
}

// HandleDownload expects ?name= and an optional ?version=.
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	name := c.Query("name")
	data, err := h.service.Download(c.UserContext(), tenantOf(c), c.Params("bucket"), name, c.Query("version"))
	if err != nil {
		return h.fail(c, "Download failed", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": path.Base(name)}))
	return c.Send(data)
}

func (h *Handler) HandlePresign(c *fiber.Ctx) error {
	url, err := h.service.PresignedURL(c.UserContext(), tenantOf(c), c.Params("bucket"), c.Query("name"))
	if err != nil {
		return h.fail(c, "Presign failed", err)
	}
	return c.JSON(fiber.Map{"url": url, "expiresIn": int(storage.PresignExpiry.Seconds())})
}

func (h *Handler) HandleDeleteObject(c *fiber.Ctx) error {
	if err := h.service.DeleteObject(c.UserContext(), tenantOf(c), c.Params("bucket"), c.Query("name")); err != nil {
		return h.fail(c, "Delete object failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteObjects deletes {"objects":[...]} and answers 207 with the failed keys on partial failure.
func (h *Handler) HandleDeleteObjects(c *fiber.Ctx) error {
	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, "Batch delete failed", storage.Validation("delete objects", c.Params("bucket"), "invalid request body"))
	}
	if err := h.service.DeleteObjects(c.UserContext(), tenantOf(c), c.Params("bucket"), req.Objects); err != nil {
		return h.fail(c, "Batch delete failed", err)
	}
	return c.JSON(fiber.Map{"deleted": len(req.Objects)})
}

func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	tenantID := tenantOf(c)
	if err := h.service.RefreshConnection(c.UserContext(), tenantID); err != nil {
		return h.fail(c, "Connection refresh failed", err)
	}
	return c.JSON(fiber.Map{"tenant": tenantID, "refreshed": true})
}

// tenantOf copies the tenant header; fiber reuses the request buffer once the handler returns.
func tenantOf(c *fiber.Ctx) string {
	return strings.Clone(c.Get(TenantHeader))
}

// fail logs err with the request's ray id and writes the matching status.
func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.service.logger, c)
	status := statusFor(err)
	body := fiber.Map{"error": err.Error()}

	var se *storage.Error
	if errors.As(err, &se) && len(se.Failed) > 0 {
		body["failed"] = se.Failed
	}

	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.String("tenant", tenantOf(c)), zap.Error(err))
	} else {
		l.Warn(msg, zap.String("tenant", tenantOf(c)), zap.Error(err))
	}
	return c.Status(status).JSON(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tenant.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, storage.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrPartialFailure):
		return fiber.StatusMultiStatus
	case errors.Is(err, storage.ErrInterrupted):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, storage.ErrBackend):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ParseTags turns key:value pairs into a map; the value may contain ':'.
func ParseTags(raw []string) (map[string]string, error) {
	tags := make(map[string]string, len(raw))
	for _, pair := range raw {
		key, value, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, storage.Validation("parse tags", pair, "tags must be key:value")
		}
		tags[key] = value
	}
	return tags, nil
}
