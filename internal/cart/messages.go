package cart

// Toast and prompt texts shown on the cart page
const (
	msgLoginRequired        = "يرجى تسجيل الدخول أولاً"
	msgBusy                 = "جاري تحديث السلة، يرجى الانتظار"
	msgQuantityUpdated      = "تم تحديث الكمية"
	msgUpdateQuantityFailed = "فشل تحديث الكمية"
	msgQuantityExceedsStock = "الكمية المطلوبة غير متوفرة، المتوفر %d فقط"
	msgConfirmRemove        = "هل أنت متأكد من حذف هذا المنتج من السلة؟"
	msgRemoved              = "تم حذف المنتج من السلة"
	msgRemoveFailed         = "فشل حذف المنتج من السلة"
	msgConfirmClear         = "هل أنت متأكد من إفراغ السلة بالكامل؟"
	msgCleared              = "تم إفراغ السلة"
	msgMissingFields        = "يرجى إكمال الحقول المطلوبة: %s"
	msgInvalidField         = "%s: %s"
	msgOptionsUpdated       = "تم تحديث خيارات المنتج بنجاح"
	msgOptionsUpdateFailed  = "فشل تحديث خيارات المنتج"
)

// listSeparator joins field labels in Arabic text
const listSeparator = "، "
