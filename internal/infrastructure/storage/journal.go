package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	JournalMagic   string = `WRIJ` // 4 байта
	JournalVersion uint32 = 1
)

// Типы намерений в журнале
const (
	IntentMove uint8 = iota + 1
	IntentAttack
	IntentUse
	IntentRespawn
)

// JournalHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: внутри только массивы и числа.
type JournalHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	IntentCount int32   // 4 байта
}

// IntentRecord - одна запись журнала: такт и намерение игрока.
// Dx/Dy заполнены для IntentMove, TargetLen прицепляет ID цели
// (атака) или предмета (использование).
type IntentRecord struct {
	Tick      int32
	Kind      uint8
	Dx, Dy    int8
	TargetLen uint8
}

// Intent - запись журнала в доменном виде
type Intent struct {
	Tick   int
	Kind   uint8
	Dx, Dy int
	Target string
}

// IntentJournal накапливает намерения игрока за сессию. Вместе с
// мастер-сидом журнал полностью воспроизводит партию: мир
// детерминирован, вся случайность выводится из сида.
type IntentJournal struct {
	Seed      int64
	Timestamp int64
	Intents   []Intent
}

func NewIntentJournal(seed, timestamp int64) *IntentJournal {
	return &IntentJournal{Seed: seed, Timestamp: timestamp}
}

// Record добавляет намерение в журнал
func (j *IntentJournal) Record(tick int, kind uint8, dx, dy int, target string) {
	j.Intents = append(j.Intents, Intent{Tick: tick, Kind: kind, Dx: dx, Dy: dy, Target: target})
}

// Save пишет журнал в файл
func (j *IntentJournal) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeJournal(f, j)
}

func writeJournal(w io.Writer, j *IntentJournal) error {
	header := JournalHeader{
		Version:     JournalVersion,
		Seed:        j.Seed,
		Timestamp:   j.Timestamp,
		IntentCount: int32(len(j.Intents)),
	}
	copy(header.Magic[:], JournalMagic)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write journal header: %w", err)
	}

	for _, in := range j.Intents {
		target := []byte(in.Target)
		if len(target) > 255 {
			return fmt.Errorf("target too long: %d", len(target))
		}

		rec := IntentRecord{
			Tick:      int32(in.Tick),
			Kind:      in.Kind,
			Dx:        int8(in.Dx),
			Dy:        int8(in.Dy),
			TargetLen: uint8(len(target)),
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return err
		}
		if len(target) > 0 {
			if _, err := w.Write(target); err != nil {
				return err
			}
		}
	}

	return nil
}

// LoadJournal читает и валидирует журнал намерений
func LoadJournal(path string) (*IntentJournal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readJournal(f)
}

func readJournal(r io.Reader) (*IntentJournal, error) {
	var header JournalHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read journal header: %w", err)
	}

	if string(header.Magic[:]) != JournalMagic {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != JournalVersion {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, JournalVersion)
	}

	j := &IntentJournal{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Intents:   make([]Intent, header.IntentCount),
	}

	for i := 0; i < int(header.IntentCount); i++ {
		var rec IntentRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, err
		}

		in := Intent{
			Tick: int(rec.Tick),
			Kind: rec.Kind,
			Dx:   int(rec.Dx),
			Dy:   int(rec.Dy),
		}
		if rec.TargetLen > 0 {
			buf := make([]byte, rec.TargetLen)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, err
			}
			in.Target = string(buf)
		}
		j.Intents[i] = in
	}

	return j, nil
}
