package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hasbyte1/go-laravel-hashing/hashing"
	"github.com/hasbyte1/go-laravel-hashing/internal/cli"
)

var _ = Describe("hashctl", func() {
	Describe("make", func() {
		It("Should hash with bcrypt by default", func() {
			digest, err := execute("", "make", "--rounds", "4", "hunter2")
			Expect(err).ToNot(HaveOccurred())
			Expect(digest).To(HavePrefix("$2a$04$"))
			Expect(digest).To(HaveLen(60))
		})

		It("Should honour --driver", func() {
			digest, err := execute("", "make", "--driver", "argon2id", "--memory", "64", "--time", "1", "hunter2")
			Expect(err).ToNot(HaveOccurred())
			Expect(digest).To(HavePrefix("$argon2id$v=19$m=64,t=1,p=2$"))
		})

		It("Should read the secret from stdin", func() {
			digest, err := execute("from-stdin\nignored\n", "make", "--rounds", "4")
			Expect(err).ToNot(HaveOccurred())
			out, err := execute("", "check", digest, "from-stdin")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("true"))
		})

		It("Should fail without a secret", func() {
			_, err := execute("", "make")
			Expect(err).To(MatchError(cli.ErrNoSecret))
		})

		It("Should reject unsupported cost parameters", func() {
			_, err := execute("", "make", "--rounds", "40", "pw")
			Expect(err).To(MatchError(hashing.ErrHashingUnsupported))
		})

		It("Should reject an unknown driver", func() {
			_, err := execute("", "make", "--driver", "md5", "pw")
			Expect(err).To(MatchError(hashing.ErrUnsupportedDriver))
		})
	})

	Describe("check", func() {
		var digest string

		BeforeEach(func() {
			var err error
			digest, err = execute("", "make", "--rounds", "4", "secret1")
			Expect(err).ToNot(HaveOccurred())
		})

		It("Should print true for the right secret", func() {
			out, err := execute("", "check", digest, "secret1")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("true"))
		})

		It("Should print false for the wrong secret", func() {
			out, err := execute("wrong\n", "check", digest)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("false"))
		})
	})

	Describe("needs-rehash", func() {
		It("Should compare against per-call overrides", func() {
			digest, err := execute("", "make", "--driver", "argon", "--memory", "64", "--time", "1", "pw")
			Expect(err).ToNot(HaveOccurred())

			out, err := execute("", "needs-rehash", "--driver", "argon", "--memory", "64", "--time", "1", digest)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("false"))

			out, err = execute("", "needs-rehash", "--driver", "argon", "--memory", "2048", "--time", "1", digest)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("true"))
		})

		It("Should fail on a malformed digest", func() {
			_, err := execute("", "needs-rehash", "garbage")
			Expect(err).To(MatchError(hashing.ErrMalformedDigest))
		})
	})

	Describe("info", func() {
		It("Should print the digest parameters as JSON", func() {
			digest, err := execute("", "make", "--rounds", "5", "pw")
			Expect(err).ToNot(HaveOccurred())

			out, err := execute("", "info", digest)
			Expect(err).ToNot(HaveOccurred())

			var info hashing.Info
			Expect(json.Unmarshal([]byte(out), &info)).To(Succeed())
			Expect(info.Algorithm).To(Equal(hashing.AlgorithmBcrypt))
			Expect(info.ID).To(Equal("2a"))
			Expect(info.Options).To(HaveKeyWithValue("rounds", 5))
		})
	})

	Describe("drivers", func() {
		It("Should list every driver and mark the default", func() {
			out, err := execute("", "drivers", "--driver", "argon2id")
			Expect(err).ToNot(HaveOccurred())
			Expect(strings.Split(out, "\n")).To(ConsistOf(
				"argon",
				"argon2i",
				"argon2id *",
				"bcrypt",
			))
		})
	})

	Describe("configuration file", func() {
		var path string

		BeforeEach(func() {
			dir, err := os.MkdirTemp("", "hashctl")
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)

			path = filepath.Join(dir, "hashing.yaml")
			Expect(os.WriteFile(path, []byte(`
hashing:
  driver: argon
  argon:
    memory: 32
    time: 1
    threads: 1
    verify: true
`), 0o600)).To(Succeed())
		})

		It("Should use the configured driver and parameters", func() {
			digest, err := execute("", "make", "--config", path, "pw")
			Expect(err).ToNot(HaveOccurred())
			Expect(digest).To(HavePrefix("$argon2i$v=19$m=32,t=1,p=1$"))
		})

		It("Should let --driver win over the file", func() {
			digest, err := execute("", "make", "--config", path, "--driver", "bcrypt", "--rounds", "4", "pw")
			Expect(err).ToNot(HaveOccurred())
			Expect(digest).To(HavePrefix("$2a$04$"))
		})

		It("Should refuse foreign digests when verify is on", func() {
			digest, err := execute("", "make", "--driver", "bcrypt", "--rounds", "4", "pw")
			Expect(err).ToNot(HaveOccurred())

			_, err = execute("", "check", "--config", path, digest, "pw")
			Expect(err).To(MatchError(hashing.ErrAlgorithmMismatch))
		})

		It("Should fail when the file is missing", func() {
			_, err := execute("", "make", "--config", path+".missing", "pw")
			Expect(err).To(HaveOccurred())
		})
	})
})
