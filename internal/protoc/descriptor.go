package protoc

import (
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// DescriptorInfo summarizes a verified FileDescriptorSet.
type DescriptorInfo struct {
	// Files is the number of descriptor file entries.
	Files int

	// Messages is the total message type count across all entries.
	Messages int

	// Services is the total service count across all entries.
	Services int
}

// VerifyDescriptorSet parses the descriptor set emitted by Generate and
// checks that every compiled .proto file has a descriptor entry. A protoc
// run that exits zero but produces an empty or truncated set is caught here.
func VerifyDescriptorSet(outDir string, protoFiles []string) (*DescriptorInfo, error) {
	path := filepath.Join(outDir, DescriptorFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor set %s: %w", path, err)
	}

	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing descriptor set %s: %w", path, err)
	}

	byName := make(map[string]*descriptorpb.FileDescriptorProto, len(set.File))
	info := &DescriptorInfo{Files: len(set.File)}
	for _, fd := range set.File {
		byName[fd.GetName()] = fd
		info.Messages += len(fd.MessageType)
		info.Services += len(fd.Service)
	}

	for _, f := range protoFiles {
		name := filepath.ToSlash(f)
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("descriptor set %s has no entry for %s", path, name)
		}
	}

	return info, nil
}
