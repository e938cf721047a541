package csvlog

import (
	"github.com/golang/snappy"
)

// CompressLog сжимает содержимое ротированного файла журнала
func CompressLog(data []byte) []byte {
	return snappy.Encode(nil, data)
}

// DecompressLog распаковывает содержимое ротированного файла журнала
func DecompressLog(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	return decompressed, nil
}
