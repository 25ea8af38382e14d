// SPDX-License-Identifier: BSD-3-Clause

package secureboot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mini-bmc/mini-bmc/pkg/sel"
)

// DefaultImageDir is where simulated firmware blobs are materialized.
const DefaultImageDir = "/tmp/bmc_fw_images"

// ImageSize is the size of every simulated firmware blob in bytes.
const ImageSize = 4096

// imageSeedBase offsets the deterministic per-image generator seed.
const imageSeedBase = 42

// Image tracks the verification state of one firmware stage.
// Verified=true means the verifier inspected the image this boot;
// Passed is meaningful only once Verified is set.
type Image struct {
	Name         string
	Description  string
	ExpectedHash string
	ActualHash   string
	Verified     bool
	Passed       bool
}

// imageSpec declares the boot chain in verification order.
type imageSpec struct {
	name        string
	description string
}

var defaultImages = []imageSpec{
	{"bootloader", "First-stage bootloader (RoT verified)"},
	{"bmc_firmware", "BMC main firmware image"},
	{"application", "Management application layer"},
	{"config_data", "Platform configuration data"},
}

// Chain is the secure-boot chain-of-trust verifier. It materializes
// deterministic firmware blobs at init, records their digests as the
// trusted baseline, and re-hashes them on every verify pass. The first
// stage that fails breaks the chain: later stages are not inspected.
//
// Chain methods that take a *sel.Log expect the caller to hold the
// shared state mutex; the chain itself has no locking.
type Chain struct {
	dir    string
	Images []Image
}

// NewChain creates a verifier rooted at dir. Call Init before Verify.
func NewChain(dir string) *Chain {
	if dir == "" {
		dir = DefaultImageDir
	}
	return &Chain{dir: dir}
}

// Dir returns the firmware blob directory.
func (c *Chain) Dir() string {
	return c.dir
}

// Init generates the firmware blobs and records their expected digests.
func (c *Chain) Init(log *sel.Log) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrImageDirCreation, err)
	}

	c.Images = make([]Image, len(defaultImages))
	for i, def := range defaultImages {
		img := Image{Name: def.name, Description: def.description}

		path := c.imagePath(def.name)
		if err := generateImage(path, int64(imageSeedBase+i)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrImageGeneration, def.name, err)
		}

		hash, err := hashFile(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrImageHash, def.name, err)
		}
		img.ExpectedHash = hash
		c.Images[i] = img
	}

	log.Add(sel.SeverityInfo, "SecureBoot",
		fmt.Sprintf("Secure boot chain initialized with %d images", len(c.Images)))
	return nil
}

// Verify walks the chain in order, recomputing each image digest and
// comparing it to the recorded baseline. The first unreadable or
// mismatching image marks overall failure and stops the walk, leaving
// downstream images unverified. Returns the overall result.
func (c *Chain) Verify(log *sel.Log) bool {
	allPassed := true

	for i := range c.Images {
		img := &c.Images[i]
		img.Verified = false
		img.Passed = false
		img.ActualHash = ""
	}

	for i := range c.Images {
		img := &c.Images[i]

		hash, err := hashFile(c.imagePath(img.Name))
		if err != nil {
			img.Verified = true
			img.Passed = false
			allPassed = false
			log.Add(sel.SeverityCritical, "SecureBoot",
				fmt.Sprintf("FAIL: Cannot read image '%s'", img.Name))
			break
		}

		img.ActualHash = hash
		img.Verified = true
		img.Passed = img.ActualHash == img.ExpectedHash

		if img.Passed {
			log.Add(sel.SeverityInfo, "SecureBoot",
				fmt.Sprintf("PASS: Image '%s' integrity verified", img.Name))
			continue
		}

		allPassed = false
		log.Add(sel.SeverityCritical, "SecureBoot",
			fmt.Sprintf("FAIL: Image '%s' hash mismatch - possible tampering!", img.Name))
		break
	}

	return allPassed
}

// Tamper corrupts the first byte of image index i to simulate a
// compromised firmware stage.
func (c *Chain) Tamper(i int, log *sel.Log) error {
	if i < 0 || i >= len(c.Images) {
		return ErrImageIndex
	}

	f, err := os.OpenFile(c.imagePath(c.Images[i].Name), os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImageTamper, err)
	}
	defer f.Close()

	if _, err := f.WriteAt([]byte{0xFF}, 0); err != nil {
		return fmt.Errorf("%w: %w", ErrImageTamper, err)
	}

	log.Add(sel.SeverityWarning, "SecureBoot",
		fmt.Sprintf("Injected tamper into '%s'", c.Images[i].Name))
	return nil
}

// Restore regenerates image index i from its deterministic seed,
// undoing any tampering.
func (c *Chain) Restore(i int, log *sel.Log) error {
	if i < 0 || i >= len(c.Images) {
		return ErrImageIndex
	}

	if err := generateImage(c.imagePath(c.Images[i].Name), int64(imageSeedBase+i)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrImageGeneration, c.Images[i].Name, err)
	}

	log.Add(sel.SeverityInfo, "SecureBoot",
		fmt.Sprintf("Restored image '%s'", c.Images[i].Name))
	return nil
}

// Cleanup removes the firmware blob directory.
func (c *Chain) Cleanup() error {
	return os.RemoveAll(c.dir)
}

func (c *Chain) imagePath(name string) string {
	return filepath.Join(c.dir, name+".bin")
}

// lcg is the classic C library linear congruential generator. Firmware
// blob content must be byte-identical across platforms and Go releases,
// which rules out math/rand's unversioned stream.
type lcg struct {
	state uint32
}

func (g *lcg) next() byte {
	g.state = g.state*1103515245 + 12345
	return byte(g.state >> 16)
}

// generateImage writes a deterministic pseudo-random blob so expected
// digests are reproducible across runs.
func generateImage(path string, seed int64) error {
	rng := lcg{state: uint32(seed)}
	buf := make([]byte, ImageSize)
	for i := range buf {
		buf[i] = rng.next()
	}
	return os.WriteFile(path, buf, 0o644)
}

// hashFile returns the SHA-256 digest of a file as a lowercase hex string.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
