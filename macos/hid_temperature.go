//go:build darwin && cgo

package macos

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Foundation -framework IOKit

#import <Foundation/Foundation.h>
#import <IOKit/IOKitLib.h>

typedef double IOHIDFloat;
typedef struct __IOHIDEventSystemClient *IOHIDEventSystemClientRef;
typedef struct __IOHIDServiceClient *IOHIDServiceClientRef;
typedef struct __IOHIDEvent *IOHIDEventRef;

extern IOHIDEventSystemClientRef IOHIDEventSystemClientCreate(CFAllocatorRef allocator);
extern int IOHIDEventSystemClientSetMatching(IOHIDEventSystemClientRef client, CFDictionaryRef match);
extern CFArrayRef IOHIDEventSystemClientCopyServices(IOHIDEventSystemClientRef client);
extern IOHIDEventRef IOHIDServiceClientCopyEvent(IOHIDServiceClientRef service, int64_t type, int32_t options, int64_t depth);
extern IOHIDFloat IOHIDEventGetFloatValue(IOHIDEventRef event, int32_t field);
extern CFTypeRef IOHIDServiceClientCopyProperty(IOHIDServiceClientRef service, CFStringRef key);

#define kIOHIDEventTypeTemperature 15
#define IOHIDEventFieldBase(type) (type << 16)

// One "product\tcelsius" line per temperature service. Empty when the
// event system has no thermal sensors (Intel Macs).
char *listHIDTemperatures() {
    @autoreleasepool {
        NSDictionary *matching = @{
            @"PrimaryUsagePage" : @(0xff00),
            @"PrimaryUsage" : @(5)
        };
        IOHIDEventSystemClientRef system = IOHIDEventSystemClientCreate(kCFAllocatorDefault);
        if (!system) {
            return strdup("");
        }

        IOHIDEventSystemClientSetMatching(system, (__bridge CFDictionaryRef)matching);
        CFArrayRef servicesRef = IOHIDEventSystemClientCopyServices(system);
        NSArray *services = (__bridge NSArray *)servicesRef;

        NSMutableString *out = [NSMutableString string];
        for (id service in services) {
            IOHIDServiceClientRef serviceRef = (__bridge IOHIDServiceClientRef)service;
            IOHIDEventRef event = IOHIDServiceClientCopyEvent(serviceRef, kIOHIDEventTypeTemperature, 0, 0);
            if (!event) {
                continue;
            }
            double temp = IOHIDEventGetFloatValue(event, IOHIDEventFieldBase(kIOHIDEventTypeTemperature));
            CFRelease(event);

            CFTypeRef productRef = IOHIDServiceClientCopyProperty(serviceRef, CFSTR("Product"));
            NSString *product = @"unknown";
            if (productRef) {
                product = (__bridge NSString *)productRef;
            }
            [out appendFormat:@"%@\t%.2f\n", product, temp];
            if (productRef) CFRelease(productRef);
        }

        if (servicesRef) CFRelease(servicesRef);
        CFRelease(system);
        return strdup([out UTF8String]);
    }
}
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// HIDSensors lists the temperature sensors published through the IOHID
// event system. This is where Apple Silicon exposes its thermal sensors;
// their SMC keys differ from the Intel ones.
func HIDSensors() ([]Sensor, error) {
	cStr := C.listHIDTemperatures()
	if cStr == nil {
		return nil, fmt.Errorf("failed to get HID temperatures")
	}
	defer C.free(unsafe.Pointer(cStr))

	return parseHIDList(C.GoString(cStr))
}
