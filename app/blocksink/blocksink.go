package blocksink

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// WriteBlock writes block to w: its hash, its nonce, then the ID of each
// of its transactions in block order, one per line
func WriteBlock(w io.Writer, block *externalapi.DomainBlock) error {
	writer := bufio.NewWriter(w)
	lines := make([]string, 0, len(block.Transactions)+2)
	lines = append(lines, block.Hash, strconv.FormatUint(block.Nonce, 10))
	lines = append(lines, block.TransactionIDs()...)
	for _, line := range lines {
		_, err := writer.WriteString(line + "\n")
		if err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(writer.Flush())
}

// WriteBlockToFile writes block to the file at path, replacing its content
func WriteBlockToFile(path string, block *externalapi.DomainBlock) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed creating block file %s", path)
	}

	err = WriteBlock(file, block)
	if err != nil {
		file.Close()
		return err
	}
	err = file.Close()
	if err != nil {
		return errors.WithStack(err)
	}
	log.Infof("Wrote block %s to %s", block.Hash, path)
	return nil
}
