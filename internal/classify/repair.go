package classify

import "github.com/inkwell-commerce/declare/internal/model"

// RepairCode applies purely structural fixes to an already-cleaned (digits
// only) trade-classification code. Carriers routinely drop the statistical
// suffix, leaving a 4, 6, or 8 digit heading that pads out with zeros; a
// 9-digit code is a full code with one trailing zero lost in a spreadsheet
// round-trip. Anything else is returned unchanged: guessing at product
// identity is the classifier's job, not this function's.
func RepairCode(code string) string {
	switch len(code) {
	case 0:
		return ""
	case model.CanonicalCodeLength:
		return code
	case 4, 6, 8, 9:
		padded := code
		for len(padded) < model.CanonicalCodeLength {
			padded += "0"
		}
		return padded
	default:
		return code
	}
}
