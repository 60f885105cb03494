package upload

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// URLPrefix 是上传文件对外暴露的路径前缀。聊天消息里的文件引用
// 必须落在这个前缀下,核心只认前缀,不做任何内容检查。
const URLPrefix = "/uploads/"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Service 把上传的字节落盘并返回稳定的引用路径,除此之外没有
// 任何语义,核心对它的依赖仅限于这一条契约。
type Service struct {
	dir string
}

func NewService(dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Service{dir: dir}, nil
}

// Dir 返回存储目录,供静态文件路由回读。
func (s *Service) Dir() string { return s.dir }

// Save 存储一个文件并返回它的引用路径。原始文件名会被清洗掉
// 不安全字符并加上随机前缀避免互相覆盖。
func (s *Service) Save(name string, r io.Reader) (string, error) {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	safe := unsafeChars.ReplaceAllString(filepath.Base(name), "_")
	stored := hex.EncodeToString(b) + "-" + safe
	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return URLPrefix + stored, nil
}
