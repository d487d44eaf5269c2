package game

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"log"
	"path"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// ErrImageNotFound is returned when a sprite image ID cannot be resolved.
// It is a configuration error: the caller should fail fast rather than retry.
var ErrImageNotFound = errors.New("image resource not found")

// ResourceManager is responsible for centralized management of sprite images.
// It resolves resource IDs declared in the YAML resource configuration to files
// inside a file system (the embedded assets in production, an in-memory FS in
// tests) and caches decoded images so each file is decoded only once.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is used from the single ebiten
// update goroutine only.
//
// Usage:
//
//	rm := NewResourceManager(embedded.FS())
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    return err
//	}
//	img, err := rm.LoadImageByID("IMAGE_BALLOON1")
type ResourceManager struct {
	fsys       fs.FS
	imageCache map[string]*ebiten.Image // Cache for loaded images: path -> Image

	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup
}

// NewResourceManager creates a ResourceManager reading files from fsys.
func NewResourceManager(fsys fs.FS) *ResourceManager {
	return &ResourceManager{
		fsys:        fsys,
		imageCache:  make(map[string]*ebiten.Image),
		resourceMap: make(map[string]string),
	}
}

// LoadResourceConfig parses the YAML resource configuration at configPath and
// builds the resource ID -> path lookup table.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := fs.ReadFile(rm.fsys, configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	rm.config = &config
	rm.buildResourceMap()
	log.Printf("[ResourceManager] Loaded %d resource IDs from %s", len(rm.resourceMap), configPath)
	return nil
}

// buildResourceMap joins base_path with each image path.
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			rm.resourceMap[img.ID] = path.Join(rm.config.BasePath, img.Path)
		}
	}
}

// HasImage reports whether resourceID is declared in the resource configuration.
func (rm *ResourceManager) HasImage(resourceID string) bool {
	_, exists := rm.resourceMap[resourceID]
	return exists
}

// ImageIDs returns every declared image ID in sorted order.
func (rm *ResourceManager) ImageIDs() []string {
	ids := make([]string, 0, len(rm.resourceMap))
	for id := range rm.resourceMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolvePath returns the file path declared for resourceID.
//
// Returns an error wrapping ErrImageNotFound if the config is not loaded or the ID is unknown.
func (rm *ResourceManager) ResolvePath(resourceID string) (string, error) {
	if rm.config == nil {
		return "", fmt.Errorf("%w: resource config not loaded - call LoadResourceConfig first", ErrImageNotFound)
	}
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrImageNotFound, resourceID)
	}
	return filePath, nil
}

// DecodeImage opens and decodes the image at filePath without touching the GPU.
func (rm *ResourceManager) DecodeImage(filePath string) (image.Image, error) {
	file, err := rm.fsys.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrImageNotFound, filePath, err)
		}
		return nil, fmt.Errorf("failed to open image file %s: %w", filePath, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filePath, err)
	}
	return img, nil
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
func (rm *ResourceManager) LoadImage(filePath string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[filePath]; exists {
		return cachedImage, nil
	}

	img, err := rm.DecodeImage(filePath)
	if err != nil {
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[filePath] = ebitenImg
	return ebitenImg, nil
}

// LoadImageByID resolves resourceID through the resource configuration and loads it.
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	filePath, err := rm.ResolvePath(resourceID)
	if err != nil {
		return nil, err
	}
	return rm.LoadImage(filePath)
}

// VerifyImages decodes every listed image once so a missing or corrupt sprite
// variant is reported at startup instead of on the first spawn that picks it.
func (rm *ResourceManager) VerifyImages(resourceIDs []string) error {
	for _, id := range resourceIDs {
		filePath, err := rm.ResolvePath(id)
		if err != nil {
			return err
		}
		if _, err := rm.DecodeImage(filePath); err != nil {
			return fmt.Errorf("image %s: %w", id, err)
		}
	}
	return nil
}

// LoadResourceGroup loads every image declared in groupName.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			return fmt.Errorf("failed to load image %s in group %s: %w", img.ID, groupName, err)
		}
	}
	log.Printf("[ResourceManager] Loaded group %s (%d images)", groupName, len(group.Images))
	return nil
}
