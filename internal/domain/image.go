package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Image es la foto de perfil tal como la envia el cliente:
// {"data": [137, 80, 78, ...], "contentType": "image/png"}.
type Image struct {
	Data        []byte `json:"data" binding:"min=1"`
	ContentType string `json:"contentType" binding:"required,image_mime"`
}

type imageJSON struct {
	Data        []int  `json:"data"`
	ContentType string `json:"contentType"`
}

// MarshalJSON serializa Data como arreglo de enteros y no como base64.
func (i Image) MarshalJSON() ([]byte, error) {
	out := imageJSON{
		Data:        make([]int, len(i.Data)),
		ContentType: i.ContentType,
	}
	for idx, b := range i.Data {
		out.Data[idx] = int(b)
	}
	return json.Marshal(out)
}

func (i *Image) UnmarshalJSON(raw []byte) error {
	var in imageJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	data := make([]byte, len(in.Data))
	for idx, v := range in.Data {
		if v < 0 || v > 255 {
			return fmt.Errorf("image byte %d out of range: %d", idx, v)
		}
		data[idx] = byte(v)
	}
	i.Data = data
	i.ContentType = strings.TrimSpace(in.ContentType)
	return nil
}
