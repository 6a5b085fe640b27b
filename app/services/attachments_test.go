package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhyar02/scholar-draft-sub000/app/forms"
	"github.com/akhyar02/scholar-draft-sub000/app/models"
)

// stubVerifier serves object metadata from a map, standing in for the
// remote store.
type stubVerifier struct {
	objects map[string]*ObjectInfo
}

func (s *stubVerifier) StatUpload(_ context.Context, objectKey string) (*ObjectInfo, error) {
	info, ok := s.objects[objectKey]
	if !ok {
		return nil, newError(CodeObjectNotFound, "uploaded object not found", 422)
	}
	return info, nil
}

const testMaxSize = 10 * 1024 * 1024

func baseAttachments() ([]*models.Attachment, *stubVerifier) {
	slots := []string{
		forms.SlotStudentIDProof,
		forms.SlotLatestTranscript,
		forms.SlotOutstandingInvoice,
		forms.SlotFatherPayslip,
		forms.SlotMotherPayslip,
	}
	verifier := &stubVerifier{objects: map[string]*ObjectInfo{}}
	var attachments []*models.Attachment
	for _, slot := range slots {
		key := "objects/" + slot
		attachments = append(attachments, &models.Attachment{
			SlotKey: slot, ObjectKey: key,
			SizeBytes: 1024, MimeType: "application/pdf",
		})
		verifier.objects[key] = &ObjectInfo{SizeBytes: 1024, MimeType: "application/pdf"}
	}
	return attachments, verifier
}

func TestVerifyAttachmentsAllPresent(t *testing.T) {
	f := forms.NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	attachments, verifier := baseAttachments()

	err := verifyAttachments(context.Background(), verifier, testMaxSize, forms.RequiredSlots(f), attachments)
	assert.NoError(t, err)
}

func TestVerifyAttachmentsMissingSlot(t *testing.T) {
	f := forms.NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	attachments, verifier := baseAttachments()
	attachments = attachments[1:] // drop studentIdProof

	err := verifyAttachments(context.Background(), verifier, testMaxSize, forms.RequiredSlots(f), attachments)
	require.Error(t, err)
	serr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, CodeMissingAttachment, serr.Code)
	assert.Contains(t, serr.Message, forms.SlotStudentIDProof)
}

func TestVerifyAttachmentsRemoteMismatches(t *testing.T) {
	f := forms.NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")

	tests := []struct {
		name     string
		mutate   func(v *stubVerifier, objectKey string)
		wantCode string
	}{
		{"object missing", func(v *stubVerifier, key string) {
			delete(v.objects, key)
		}, CodeObjectNotFound},
		{"size mismatch", func(v *stubVerifier, key string) {
			v.objects[key].SizeBytes = 2048
		}, CodeSizeMismatch},
		{"mime mismatch", func(v *stubVerifier, key string) {
			v.objects[key].MimeType = "image/png"
		}, CodeMimeTypeMismatch},
		{"unsupported type", func(v *stubVerifier, key string) {
			v.objects[key].MimeType = "application/zip"
		}, CodeInvalidMimeType},
		{"too large", func(v *stubVerifier, key string) {
			v.objects[key].SizeBytes = testMaxSize + 1
		}, CodeFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attachments, verifier := baseAttachments()
			tt.mutate(verifier, "objects/"+forms.SlotLatestTranscript)

			err := verifyAttachments(context.Background(), verifier, testMaxSize, forms.RequiredSlots(f), attachments)
			require.Error(t, err)
			serr, ok := err.(*Error)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, serr.Code)
			assert.Contains(t, serr.Message, forms.SlotLatestTranscript)
		})
	}
}

func TestVerifyAttachmentsIgnoresExtraUploads(t *testing.T) {
	f := forms.NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	attachments, verifier := baseAttachments()
	// An upload for a slot the form no longer requires is not verified.
	attachments = append(attachments, &models.Attachment{
		SlotKey:   forms.SlotOkuCard,
		ObjectKey: "objects/dangling",
		SizeBytes: 99, MimeType: "application/pdf",
	})

	err := verifyAttachments(context.Background(), verifier, testMaxSize, forms.RequiredSlots(f), attachments)
	assert.NoError(t, err)
}
