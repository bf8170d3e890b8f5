package cmdtable

// Command 0x0d is a megamix of OKI effects.
// Command 0x14 repeats the opening crash of its sample four times.
var batsugun = [64]uint8{
	/*00*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*08*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*10*/ 0x00, 0x00, 0x00, 0x12, 0x12, 0x10, 0x0e, 0x0f,
	/*18*/ 0x0d, 0x00, 0x11, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*20*/ 0x00, 0x00, 0x00, 0x13, 0x14, 0x17, 0x15, 0x16,
	/*28*/ 0x18, 0x19, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*30*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1a,
	/*38*/ 0x0e, 0x0f, 0x1b, 0x00, 0x00, 0x00, 0x00, 0x00,
}

var kbash = [128]uint8{
	/*00*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*08*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*10*/ 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18, 0x19,
	/*18*/ 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20, 0x21,
	/*20*/ 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x29,
	/*28*/ 0x2a, 0x2b, 0x2c, 0x2d, 0x2e, 0x2f, 0x30, 0x31,
	/*30*/ 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39,
	/*38*/ 0x3a, 0x3b, 0x3c, 0x3d, 0x3e, 0x3f, 0x40, 0x41,
	/*40*/ 0x42, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48, 0x49,
	/*48*/ 0x4a, 0x4b, 0x4c, 0x4d, 0x4e, 0x4f, 0x50, 0x51,
	/*50*/ 0x52, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58, 0x59,
	/*58*/ 0x5a, 0x5b, 0x5c, 0x5d, 0x5e, 0x5f, 0x60, 0x61,
	/*60*/ 0x62, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69,
	/*68*/ 0x6a, 0x6b, 0x6c, 0x6d, 0x6e, 0x6f, 0x70, 0x00,
	/*70*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*78*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// Some fixeight effects are layered with FM tones the table cannot express,
// probably 0x60, 0x52, 0x50 and 0x46 among others.
var fixeight = [128]uint8{
	/*00*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*08*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*10*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*18*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*20*/ 0x18, 0x3e, 0x37, 0x48, 0x38, 0x49, 0x4a, 0x4b,
	/*28*/ 0x4c, 0x4d, 0x4e, 0x4f, 0x50, 0x53, 0x54, 0x51,
	/*30*/ 0x52, 0x00, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00,
	/*38*/ 0x07, 0x08, 0x00, 0x1b, 0x00, 0x43, 0x00, 0x00,
	/*40*/ 0x00, 0x47, 0x00, 0x3a, 0x44, 0x0a, 0x0a, 0x06,
	/*48*/ 0x3c, 0x46, 0x3f, 0x45, 0x00, 0x02, 0x04, 0x10,
	/*50*/ 0x0f, 0x11, 0x09, 0x0d, 0x0c, 0x0b, 0x00, 0x00,
	/*58*/ 0x00, 0x15, 0x3d, 0x3f, 0x1e, 0x1c, 0x19, 0x13,
	/*60*/ 0x14, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*68*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*70*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	/*78*/ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// Each accessor hands out a view over its own array slice; the arrays are
// never written after init.
func Batsugun() Table    { return newTable("batsugun", batsugun[:]) }
func KnuckleBash() Table { return newTable("kbash", kbash[:]) }
func FixEight() Table    { return newTable("fixeight", fixeight[:]) }
